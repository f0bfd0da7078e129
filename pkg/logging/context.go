package logging

import (
	"log/slog"
	"strings"
)

const maxStatementLen = 120

// WithTable creates a logger with table context.
// Use this for catalog operations.
//
// Example:
//
//	log := logging.WithTable("users")
//	log.Info("table registered", "columns", 3)
func WithTable(tableName string) *slog.Logger {
	return GetLogger().With("table", tableName)
}

// WithComponent creates a logger with component/subsystem context.
//
// Example:
//
//	log := logging.WithComponent("catalog")
//	log.Info("component initialized")
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithStatement creates a logger carrying the SQL text being processed,
// collapsed to one line and truncated.
func WithStatement(sql string) *slog.Logger {
	return GetLogger().With("sql", compactSQL(sql))
}

// WithError creates a logger with error context.
// Use this when logging errors to include the error in structured format.
//
// Example:
//
//	log := logging.WithError(err)
//	log.Error("statement rejected", "statement", n)
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}

func compactSQL(sql string) string {
	s := strings.Join(strings.Fields(sql), " ")
	if len(s) > maxStatementLen {
		return s[:maxStatementLen] + "..."
	}
	return s
}
