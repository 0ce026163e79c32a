package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/combin/grammar"
)

// ctrlCommands are the available control-mode commands. The use command
// takes a grammar name argument, which is itself completed.
var ctrlCommands = []string{"help", "list", "use", "clear", "quit"}

// isWordBoundary reports whether the rune delimits words for completion
// purposes.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidatesFor returns the completion candidates valid at the current word.
// The first word of a control line completes against command names; any
// later word completes against grammar names (for the use command).
// Eval-mode input has no candidates.
func candidatesFor(mode inputMode, input string, wordStart int) []string {
	if mode != modeCtrl {
		return nil
	}

	if strings.TrimSpace(input[:wordStart]) == "" {
		return ctrlCommands
	}

	return grammar.Names()
}

// matchWord runs fuzzy matching of word against candidates, returning all
// candidates in registry order when the word is empty.
func matchWord(word string, candidates []string) fuzzy.Matches {
	if word == "" {
		matches := make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches
	}

	return fuzzy.Find(word, candidates)
}
