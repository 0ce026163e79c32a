// Package repl implements the interactive parsing session for the combin
// command line interface.
package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/combin/grammar"
	"github.com/ardnew/combin/log"
	"github.com/ardnew/combin/parse"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

// maxShown bounds the number of interpretations echoed per input line.
// Ambiguous grammars can produce many; the rest are summarized.
const maxShown = 8

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help         Print this cruft
  list         List available grammars
  use NAME     Switch to grammar NAME
  clear        Clear screen
  quit         Exit REPL

Usage:
  Type input text to parse it with the current grammar
  Press Esc to toggle between parse and command modes
  Completions appear automatically in command mode
  Press Tab / Shift-Tab to cycle through candidates
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the input echo line with prompt and input styled.
func formatCommand(prompt lipgloss.Style, promptText, input string) string {
	return prompt.Render(promptText) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	grammarName  string
	parser       *parse.Parser[rune]
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	evalText     string
	evalCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run starts the REPL with the given initial grammar.
func Run(
	ctx context.Context,
	grammarName string,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("grammar", grammarName),
		slog.String("cache_dir", cacheDir),
	)

	g, ok := grammar.Lookup(grammarName)
	if !ok {
		return ErrUnknownGrammar
	}

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, g, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	g grammar.Grammar,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:     func() context.Context { return ctx },
		input:       ti,
		grammarName: g.Name,
		parser:      g.Parser,
		logger:      logger,
		history:     history,
		historyIdx:  history.Len(),
		width:       defaultWidth,
		mode:        modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Input line.
	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()
	viewingHistory := m.historyIdx < m.history.Len()

	switch {
	case viewingHistory:
		// Show history position indicator
		pos := m.historyIdx + 1 // 1-based for display
		total := m.history.Len()
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(pos)),
			total)
		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")

	case strings.TrimSpace(input) == "":
		// Empty or whitespace-only input: show hint.
		var hint string
		if m.mode == modeEval {
			hint = fmt.Sprintf(
				"Parse with %q or press Esc for commands", m.grammarName,
			)
		} else {
			hint = "Type: help, list, use, clear, quit (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")

	case len(m.matches) > 0:
		// Render horizontal candidate bar.
		b.WriteString(renderCandidateBar(
			m.matches, m.suggIdx, m.tabActive, m.width,
		))
		b.WriteString("\n")

	default:
		// Non-empty input but no matches: blank line.
		b.WriteString("\n")
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m)

		return m, nil

	case tea.KeyTab:
		return m.handleTab(1)

	case tea.KeyShiftTab:
		return m.handleTab(-1)

	case tea.KeyUp:
		return m.historyStep(-1)

	case tea.KeyDown:
		return m.historyStep(1)

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m)

			return m, nil
		}

		return m.toggleMode()

	case tea.KeyRunes:
		// Space breaks a tab-cycling session.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m)

	return m, cmd
}

// handleTab cycles through completion candidates in the given direction.
func (m model) handleTab(dir int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx += dir
		if m.suggIdx >= len(m.matches) {
			m.suggIdx = 0
		}

		if m.suggIdx < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		if dir > 0 {
			m.suggIdx = 0
		} else {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
func refreshMatches(m *model) {
	input := m.input.Value()
	cursor := m.input.Position()

	var word string

	word, m.wordStart, m.wordEnd = wordBounds(input, cursor)
	m.candidates = candidatesFor(m.mode, input, m.wordStart)
	m.matches = matchWord(word, m.candidates)

	if !m.tabActive {
		m.suggIdx = -1
	}
}

// renderCandidateBar renders the horizontal list of completion candidates,
// highlighting the selected one while tab-cycling, truncated to width.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	var b strings.Builder

	for i, match := range matches {
		if i > 0 {
			b.WriteString("  ")
		}

		if tabActive && i == suggIdx {
			b.WriteString(selectedStyle.Render(match.Str))
		} else {
			b.WriteString(suggestionStyle.Render(match.Str))
		}
	}

	bar := b.String()
	if lipgloss.Width(bar) > width {
		bar = lipgloss.NewStyle().MaxWidth(width).Render(bar)
	}

	return bar
}

// toggleMode switches between eval and ctrl modes, preserving the input
// text and cursor of each mode separately.
func (m model) toggleMode() (model, tea.Cmd) {
	if m.mode == modeEval {
		m.evalText = m.input.Value()
		m.evalCursor = m.input.Position()
		m.mode = modeCtrl
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	} else {
		m.ctrlText = m.input.Value()
		m.ctrlCursor = m.input.Position()
		m.mode = modeEval
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	}

	m.historyIdx = m.history.Len()
	refreshMatches(&m)

	return m, nil
}

// historyStep moves through history entries matching the current mode.
func (m model) historyStep(dir int) (model, tea.Cmd) {
	idx := m.historyIdx

	for {
		idx += dir
		if idx < 0 {
			return m, nil
		}

		if idx >= m.history.Len() {
			// Walked past the newest entry: restore a blank line.
			m.historyIdx = m.history.Len()
			m.input.SetValue("")
			refreshMatches(&m)

			return m, nil
		}

		entry, err := m.history.GetEntry(idx)
		if err != nil {
			return m, nil
		}

		if entry.Mode != m.mode {
			continue
		}

		m.historyIdx = idx
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m)

		return m, nil
	}
}

// executeInput submits the current line in the active mode.
func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())

	m.input.SetValue("")
	m.tabActive = false
	m.matches = nil

	if input == "" {
		return m, nil
	}

	_, _ = m.history.Write(input, m.mode)
	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.runCommand(input)
	}

	return m.runParse(input)
}

// runCommand dispatches a control-mode command line.
func (m model) runCommand(input string) (model, tea.Cmd) {
	echo := formatCommand(ctrlPromptStyle, ctrlPrompt, input)

	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "help":
		return m, tea.Println(echo + hintStyle.Render(helpMessage()))

	case "list":
		var b strings.Builder

		for _, g := range grammar.All() {
			marker := "  "
			if g.Name == m.grammarName {
				marker = "* "
			}

			fmt.Fprintf(&b, "\n%s%-8s%s", marker, g.Name, g.Description)
		}

		return m, tea.Println(echo + resultStyle.Render(b.String()))

	case "use":
		g, ok := grammar.Lookup(arg)
		if !ok {
			return m, tea.Println(
				echo + "\n" + errorStyle.Render(
					fmt.Sprintf("unknown grammar %q", arg),
				),
			)
		}

		m.grammarName = g.Name
		m.parser = g.Parser

		return m, tea.Println(
			echo + "\n" + resultStyle.Render("using grammar "+g.Name),
		)

	case "clear":
		return m, tea.ClearScreen

	case "quit":
		m.quitting = true

		return m, tea.Quit
	}

	return m, tea.Println(
		echo + "\n" + errorStyle.Render(fmt.Sprintf("unknown command %q", name)),
	)
}

// runParse parses an eval-mode line with the current grammar and echoes
// each interpretation.
func (m model) runParse(input string) (model, tea.Cmd) {
	echo := formatCommand(promptStyle, evalPrompt, input)

	result := m.parser.Parse(parse.Text(input))

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl parse",
		slog.String("grammar", m.grammarName),
		slog.String("input", input),
		slog.Int("interpretations", len(result)),
	)

	if result.Empty() {
		return m, tea.Println(
			echo + "\n" + errorStyle.Render("no match"),
		)
	}

	var b strings.Builder

	for i, pair := range result {
		if i == maxShown {
			fmt.Fprintf(&b, "\n… %d more", len(result)-maxShown)

			break
		}

		fmt.Fprintf(&b, "\n%v", formatValue(pair.Value))

		if !pair.Rest.Empty() {
			fmt.Fprintf(
				&b, " %s", hintStyle.Render("(rest "+string(pair.Rest)+")"),
			)
		}
	}

	return m, tea.Println(echo + resultStyle.Render(b.String()))
}

// formatValue renders a parser value for terminal display. Runes and rune
// slices display as text, composite values element-wise.
func formatValue(v any) string {
	switch t := v.(type) {
	case rune:
		return string(t)

	case parse.Input[rune]:
		return string(t)

	case string:
		return strconv.Quote(t)

	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = formatValue(e)
		}

		return "[" + strings.Join(parts, " ") + "]"

	default:
		return fmt.Sprintf("%v", t)
	}
}
