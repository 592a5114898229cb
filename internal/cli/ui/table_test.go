package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestTable(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	table := NewTable(&buf, []string{"Type", "Class", "Members"}, &TableOptions{NoColor: true})

	table.AddRow("billing.Account", "2", "3")
	table.AddRow("billing.Invoice", "0", "1")

	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}

	if !strings.HasPrefix(lines[0], "Type") || !strings.Contains(lines[0], "Members") {
		t.Errorf("unexpected header line %q", lines[0])
	}
	if !strings.Contains(lines[1], "─") {
		t.Errorf("expected separator, got %q", lines[1])
	}
	if lines[2] != "billing.Account  2      3" {
		t.Errorf("unexpected row %q", lines[2])
	}
	if table.Len() != 2 {
		t.Errorf("expected 2 rows, got %d", table.Len())
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{}, &TableOptions{NoColor: true})
	table.AddRow("ignored")
	table.Render()

	if buf.Len() != 0 {
		t.Errorf("expected no output for a table without headers, got %q", buf.String())
	}
}

func TestTableUnicodeWidth(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"Name", "X"}, nil)
	table.AddRow("ñandú", "1")
	table.AddRow("ab", "2")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[3] != "ab     2" {
		t.Errorf("expected rune-aligned row, got %q", lines[3])
	}
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable(&buf, true)
	kv.AddRow("Name", "billing.Account")
	kv.AddRow("Kind", "struct")
	kv.Render()

	want := "Name: billing.Account\nKind: struct\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestSection(t *testing.T) {
	var buf bytes.Buffer
	s := NewSection(&buf, "Class metadata", true)
	s.AddLine("Symbol(a) = 1")
	s.Render()

	if buf.String() != "Class metadata\n  Symbol(a) = 1\n\n" {
		t.Errorf("unexpected section output %q", buf.String())
	}

	buf.Reset()
	NewSection(&buf, "Members", true).Render()
	if !strings.Contains(buf.String(), "(none)") {
		t.Errorf("expected empty marker, got %q", buf.String())
	}
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "Types", true)

	if buf.String() != "Types\n─────\n" {
		t.Errorf("unexpected header %q", buf.String())
	}
}
