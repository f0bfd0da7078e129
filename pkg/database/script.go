package database

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// SplitStatements splits a script into statements at semicolons outside
// string literals, which may be quoted with ' or ". Each statement keeps its
// terminating semicolon; "--" comments are dropped. A trailing fragment without a semicolon is returned
// as is so that validating it reports the missing terminator.
func SplitStatements(script string) []string {
	var (
		out     []string
		current strings.Builder
		quote   byte // opening quote of the current string, 0 outside one
	)

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			out = append(out, s)
		}
		current.Reset()
	}

	for i := 0; i < len(script); i++ {
		c := script[i]
		switch {
		case quote != 0:
			current.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
			current.WriteByte(c)
		case c == '-' && i+1 < len(script) && script[i+1] == '-':
			for i < len(script) && script[i] != '\n' {
				i++
			}
			current.WriteByte('\n')
		case c == ';':
			current.WriteByte(c)
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()
	return out
}

// FileReport is the outcome of checking one script file.
type FileReport struct {
	Path string
	// Validated is the number of statements accepted before the first error.
	Validated int
	Err       error
}

// CheckFiles validates each script file in its own session created by
// newDB, running up to limit files at once (no limit when limit <= 0).
// Validation failures are reported per file; an unreadable file or a
// cancelled context aborts the whole check.
func CheckFiles(ctx context.Context, paths []string, newDB func() (*Database, error), limit int) ([]FileReport, error) {
	reports := make([]FileReport, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "reading %s", path)
			}

			db, err := newDB()
			if err != nil {
				return err
			}
			defer db.Close()

			results, err := db.ExecuteScript(string(data))
			reports[i] = FileReport{Path: path, Validated: len(results), Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
