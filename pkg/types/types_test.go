package types

import "testing"

func TestIsCompatible(t *testing.T) {
	kinds := []ValueKind{IntValue, FloatValue, StringValue, BoolValue, NullValue}
	columns := []Type{IntType, FloatType, StringType, BoolType}

	accepted := map[ValueKind]map[Type]bool{
		IntValue:    {IntType: true, FloatType: true},
		FloatValue:  {FloatType: true},
		StringValue: {StringType: true},
		BoolValue:   {BoolType: true},
		NullValue:   {IntType: true, FloatType: true, StringType: true, BoolType: true},
	}

	for _, k := range kinds {
		for _, c := range columns {
			want := accepted[k][c]
			if got := IsCompatible(k, c); got != want {
				t.Errorf("IsCompatible(%s, %s): expected %v, got %v", k, c, want, got)
			}
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		want Type
		ok   bool
	}{
		{"int", IntType, true},
		{"INTEGER", IntType, true},
		{"Real", FloatType, true},
		{"text", StringType, true},
		{"boolean", BoolType, true},
		{"blob", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseType(tt.name)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseType(%q): expected (%v, %v), got (%v, %v)", tt.name, tt.want, tt.ok, got, ok)
		}
	}
}

func TestNarrow(t *testing.T) {
	single := RowSet(Scalar(IntType, true))
	got, ok := single.Narrow()
	if !ok || !got.Equal(Scalar(IntType, true)) {
		t.Errorf("expected single-column row set to narrow to INT NULL, got %v (ok=%v)", got, ok)
	}

	if _, ok := RowSet(Scalar(IntType, false), Scalar(StringType, false)).Narrow(); ok {
		t.Errorf("expected two-column row set not to narrow")
	}
	if _, ok := Unknown().Narrow(); ok {
		t.Errorf("expected unknown not to narrow")
	}
	if s, ok := Scalar(BoolType, false).Narrow(); !ok || !s.IsBool() {
		t.Errorf("expected scalar to narrow to itself")
	}
}

func TestExpressionTypeString(t *testing.T) {
	rs := RowSet(Scalar(IntType, false), Scalar(StringType, true))
	if got, want := rs.String(), "ROWSET(INT, VARCHAR NULL)"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !FloatType.IsOrderable() || BoolType.IsOrderable() || StringType.IsNumeric() {
		t.Errorf("unexpected orderability/numeric classification")
	}
}
