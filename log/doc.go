// Package log provides a concurrency-safe structured logging facade over
// [log/slog] with a Trace level below Debug, selectable text/JSON output,
// and an optional colorized pretty printer for interactive use.
//
// The zero-value [Logger] is a no-op, which lets library code accept an
// optional logger without nil checks:
//
//	var logger log.Logger // discards everything
//	logger.Trace("never printed")
//
// Package-level functions log through a process-wide default logger that
// is reconfigured with [Config]:
//
//	log.Config(log.WithLevel(log.LevelDebug), log.WithPretty(true))
//	log.Debug("ready", slog.String("grammar", "calc"))
package log
