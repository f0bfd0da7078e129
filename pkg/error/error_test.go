package error

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestDBErrorFormat(t *testing.T) {
	err := New(ErrCategoryResolution, CodeUnknownTable, "table 'users' does not exist").
		In("Analyzer", "AnalyzeSelect")
	err.Detail = "referenced in FROM"

	got := err.Error()
	want := "[UNKNOWN_TABLE] table 'users' does not exist: referenced in FROM (operation: AnalyzeSelect, component: Analyzer)"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestHasCodeThroughWrapping(t *testing.T) {
	base := Newf(ErrCategoryType, CodeTypeMismatch, "column %s expects %s", "age", "INT")
	wrapped := errors.Wrap(base, "statement 3")

	if !HasCode(wrapped, CodeTypeMismatch) {
		t.Errorf("expected HasCode to find %s through pkg/errors wrapper", CodeTypeMismatch)
	}
	if HasCode(wrapped, CodeUnknownTable) {
		t.Errorf("expected HasCode to reject unrelated code")
	}
	if HasCode(nil, CodeTypeMismatch) {
		t.Errorf("expected HasCode(nil) to be false")
	}

	cat, ok := CategoryOf(wrapped)
	if !ok || cat != ErrCategoryType {
		t.Errorf("expected category %v, got %v (ok=%v)", ErrCategoryType, cat, ok)
	}
}

func TestWrapPreservesDBError(t *testing.T) {
	orig := New(ErrCategorySyntax, CodeUnexpectedToken, "expected FROM")
	got := Wrap(orig, CodeIO, "ParseStatement", "Parser")
	if got != orig {
		t.Fatalf("expected Wrap to return the same DBError")
	}
	if got.Component != "Parser" || got.Operation != "ParseStatement" {
		t.Errorf("expected context to be filled, got component=%q operation=%q", got.Component, got.Operation)
	}

	plain := fmt.Errorf("disk on fire")
	w := Wrap(plain, CodeIO, "ReadScript", "Database")
	if w.Category != ErrCategorySystem || w.Cause != plain {
		t.Errorf("expected system error wrapping cause, got %+v", w)
	}
	if !strings.Contains(w.Error(), "caused by: disk on fire") {
		t.Errorf("expected cause in message, got %q", w.Error())
	}
	if Wrap(nil, CodeIO, "", "") != nil {
		t.Errorf("expected Wrap(nil) to be nil")
	}
}

func TestFormatStack(t *testing.T) {
	err := New(ErrCategorySystem, CodeIO, "boom")
	if !strings.HasPrefix(err.FormatStack(), "Stack trace:") {
		t.Errorf("expected stack trace, got %q", err.FormatStack())
	}
}
