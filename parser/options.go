package parser

import "log/slog"

// Options configures a Parser the way the lexer's ScannerConfig
// configures a Scanner: a small struct with a Default constructor rather
// than a long argument list.
type Options struct {
	// Comments, when true, makes the parser collect COMMENT tokens into
	// inline comments and standalone Comment statements. Disabled by
	// default: comments are dropped from the token stream before parsing
	// starts.
	Comments bool

	// Logger receives Debug-level parse-boundary diagnostics. Defaults
	// to slog.Default() when nil.
	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{Comments: false, Logger: slog.Default()}
}
