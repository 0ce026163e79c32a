// Package cli contains the command line interface for combin.
//
// # Usage
//
// The CLI exposes the registered demonstration grammars through three
// subcommands:
//
//	combin run calc '1+2*3'       # parse input with a grammar
//	combin tree                   # list available grammars
//	combin repl calc              # interactive parsing session
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/combin/pprof)
//
// # Examples
//
//	# Debug logging with CPU profiling
//	combin --log-level=debug --pprof-mode=cpu run calc '(2+3)*4'
//
//	# Text format, pretty printed
//	combin --log-format=text --log-pretty run csv 'a,b,"c,d"'
package cli
