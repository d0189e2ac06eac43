package tabular

import (
	"reflect"
	"testing"
)

func TestParse_SimpleRows(t *testing.T) {
	rows := Parse("a,b,c\nd,e,f\n")
	want := [][]string{{"a", "b", "c"}, {"d", "e", "f"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Parse() = %v, want %v", rows, want)
	}
}

func TestParse_QuotedFieldWithCommasNewlinesAndEscapedQuotes(t *testing.T) {
	text := "a,\"hello, \"\"world\"\"\nsecond line\",c\n"
	rows := Parse(text)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d: %v", len(rows), rows)
	}
	want := []string{"a", "hello, \"world\"\nsecond line", "c"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("Parse() row = %q, want %q", rows[0], want)
	}
}

func TestParse_CRLFRowEndings(t *testing.T) {
	rows := Parse("a,b\r\nc,d\r\n")
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Parse() = %v, want %v", rows, want)
	}
}

func TestParse_FinalUnterminatedLine(t *testing.T) {
	rows := Parse("a,b\nc,d")
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Parse() = %v, want %v", rows, want)
	}
}

func TestParse_BlankRowsDropped(t *testing.T) {
	rows := Parse("a,b\n\n\nc,d\n\n")
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Parse() = %v, want %v", rows, want)
	}
}

func TestParse_EmptyCellsKept(t *testing.T) {
	rows := Parse("a,,c\n,\n")
	want := [][]string{{"a", "", "c"}, {"", ""}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Parse() = %v, want %v", rows, want)
	}
}

func TestParse_CellsTrimmed(t *testing.T) {
	rows := Parse("  a , b\t,c \n")
	want := [][]string{{"a", "b", "c"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Parse() = %v, want %v", rows, want)
	}
}

func TestParse_Empty(t *testing.T) {
	if rows := Parse(""); len(rows) != 0 {
		t.Errorf("Parse(\"\") = %v, want no rows", rows)
	}
}
