// Package logging provides the structured logger used by the litedb command
// line tools.
//
// The package wraps [log/slog] and exposes a process-wide logger that is
// installed once by Init and then retrieved via GetLogger. Only the outer layers
// (main, the database session, the terminal UI) use the global logger. The
// lexer, parser and analyzer take a *slog.Logger at construction so that a
// single parse session can be given its own sink; Discard returns a logger
// suitable for callers that do not care about diagnostics.
//
// # Initialisation
//
// Call Init once at program startup:
//
//	if err := logging.Init(logging.Config{Level: logging.LevelDebug, OutputPath: "logs/litedb.log"}); err != nil {
//	    log.Fatal(err)
//	}
//
// Without Init, GetLogger falls back to INFO-level text on stderr. Stdout is
// left alone because it belongs to the terminal UI.
//
// # Context helpers
//
//	log := logging.WithTable(name)          // adds table field
//	log := logging.WithComponent("parser")  // adds component field
//	log := logging.WithStatement(sql)       // adds a truncated sql field
package logging
