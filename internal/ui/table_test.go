package ui

import "testing"

func TestTableAlignsColumns(t *testing.T) {
	tbl := NewTable(2)
	tbl.AddRow("records", "3")
	tbl.AddRow("can_fade", "2")
	tbl.AddRow("unannotated", "1")

	want := "records      3\n" +
		"can_fade     2\n" +
		"unannotated  1\n"
	if got := tbl.String(); got != want {
		t.Fatalf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestTableEmpty(t *testing.T) {
	if got := NewTable(2).String(); got != "" {
		t.Fatalf("expected empty table to render nothing, got %q", got)
	}
}
