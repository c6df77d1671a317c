package printer

import (
	"bytes"
	"strings"
	"testing"
)

// renderedLine returns the document's text content after the ESC @ init
// sequence, with the trailing line feed stripped. Valid for documents whose
// only output after init is plain text lines.
func renderedLine(d *Document) string {
	return string(bytes.TrimRight(d.Bytes()[2:], "\n"))
}

func TestKeyValueAlignment(t *testing.T) {
	d := NewDocument(32)
	d.KeyValue("Final balance", "110.00")

	got := renderedLine(d)
	if len(got) != 32 {
		t.Errorf("line width = %d, want 32: %q", len(got), got)
	}
	if !strings.HasPrefix(got, "Final balance") {
		t.Errorf("key not left-aligned: %q", got)
	}
	if !strings.HasSuffix(got, "110.00") {
		t.Errorf("value not right-aligned: %q", got)
	}
}

func TestItemLine(t *testing.T) {
	d := NewDocument(32)
	d.ItemLine(2, "Samosa", "10.00")

	got := renderedLine(d)
	if !strings.HasPrefix(got, "2x Samosa") {
		t.Errorf("unexpected prefix: %q", got)
	}
	if !strings.HasSuffix(got, "10.00") {
		t.Errorf("total not right-aligned: %q", got)
	}
	if len(got) != 32 {
		t.Errorf("line width = %d, want 32: %q", len(got), got)
	}
}

func TestTableRowAlignsColumns(t *testing.T) {
	d := NewDocument(32)
	d.TableRow("Samosa", 5, "50", "48", "2")

	got := renderedLine(d)
	if len(got) != 32 {
		t.Fatalf("line width = %d, want 32: %q", len(got), got)
	}
	// Label pads to width minus three 5-char columns.
	if got[:17] != "Samosa           " {
		t.Errorf("label field = %q", got[:17])
	}
	if got[17:] != "   50   48    2" {
		t.Errorf("columns = %q", got[17:])
	}
}

func TestTableRowTruncatesLongLabel(t *testing.T) {
	d := NewDocument(32)
	d.TableRow("A very long cafeteria item name", 5, "10", "8", "2")

	got := renderedLine(d)
	if len(got) != 32 {
		t.Errorf("line width = %d, want 32: %q", len(got), got)
	}
	if !strings.HasSuffix(got, "2") {
		t.Errorf("last column lost: %q", got)
	}
}

func TestSeparator(t *testing.T) {
	d := NewDocument(32)
	d.Separator('-')

	got := renderedLine(d)
	if got != strings.Repeat("-", 32) {
		t.Errorf("separator = %q", got)
	}
}

func TestDocumentStartsWithInit(t *testing.T) {
	d := NewDocument(32)
	data := d.Bytes()
	if len(data) < 2 || data[0] != ESC || data[1] != '@' {
		t.Errorf("document must start with ESC @, got % x", data[:2])
	}
}

func TestPartialCut(t *testing.T) {
	d := NewDocument(32)
	d.PartialCut()

	data := d.Bytes()
	if !bytes.HasSuffix(data, []byte{GS, 'V', 0x01}) {
		t.Errorf("expected partial cut suffix, got % x", data)
	}
}
