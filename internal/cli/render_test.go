package cli

import (
	"bytes"
	"strings"
	"testing"

	"debtop/pkg/contents"
)

func TestRenderPlain(t *testing.T) {
	entries := []contents.Entry{
		{Name: "fonts-cmap-adobe", Files: 499},
		{Name: "piglit", Files: 378},
		{Name: "tex", Files: 12},
	}

	var buf bytes.Buffer
	if err := renderPlain(&buf, entries); err != nil {
		t.Fatalf("renderPlain() error = %v", err)
	}

	want := strings.Join([]string{
		"Rank | Package          | Files",
		"-------------------------------",
		"1    | fonts-cmap-adobe |   499",
		"2    | piglit           |   378",
		"3    | tex              |    12",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("renderPlain() output:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderPlainWidths(t *testing.T) {
	// Short data should still leave room for the header labels.
	entries := []contents.Entry{{Name: "x", Files: 1}}

	var buf bytes.Buffer
	if err := renderPlain(&buf, entries); err != nil {
		t.Fatalf("renderPlain() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("renderPlain() produced %d lines, want 3", len(lines))
	}
	if len(lines[1]) != len(lines[0]) {
		t.Errorf("separator length = %d, want %d", len(lines[1]), len(lines[0]))
	}
	if !strings.HasPrefix(lines[0], "Rank | Package | Files") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestRenderPlainEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := renderPlain(&buf, nil); err != nil {
		t.Fatalf("renderPlain() error = %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("renderPlain(nil) produced %d lines, want header and separator only", len(lines))
	}
}

func TestRenderStyled(t *testing.T) {
	entries := []contents.Entry{
		{Name: "libc6", Files: 42},
		{Name: "dash", Files: 7},
	}

	var buf bytes.Buffer
	renderStyled(&buf, entries)

	out := buf.String()
	for _, want := range []string{"Rank", "Package", "Files", "libc6", "dash", "42"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderStyled() output missing %q", want)
		}
	}
}
