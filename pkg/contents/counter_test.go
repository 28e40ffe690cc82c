package contents

import (
	"reflect"
	"testing"
)

func TestCounter_Record(t *testing.T) {
	c := NewCounter()

	c.Record([]string{"foo-tool"})
	c.Record([]string{"foo-tool", "bar-lib"})
	c.Record(nil) // no-op

	if got := c.Count("foo-tool"); got != 2 {
		t.Errorf("Count(foo-tool) = %d, want 2", got)
	}
	if got := c.Count("bar-lib"); got != 1 {
		t.Errorf("Count(bar-lib) = %d, want 1", got)
	}
	if got := c.Count("absent"); got != 0 {
		t.Errorf("Count(absent) = %d, want 0", got)
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

// A package listed twice on a single line counts once per reference, not
// once per line.
func TestCounter_DuplicateReferencesOnOneLine(t *testing.T) {
	c := NewCounter()
	refs, ok := ParseLine("usr/share/doc/x\tutils/foo,utils/foo")
	if !ok {
		t.Fatal("ParseLine unexpectedly skipped")
	}
	c.Record(refs)

	if got := c.Count("foo"); got != 2 {
		t.Errorf("Count(foo) = %d, want 2 (per-reference counting)", got)
	}
}

func TestCounter_TopN(t *testing.T) {
	c := NewCounter()
	for name, count := range map[string]int{
		"cherry": 3,
		"apple":  5,
		"banana": 3,
		"date":   1,
	} {
		for i := 0; i < count; i++ {
			c.Record([]string{name})
		}
	}

	tests := []struct {
		name string
		n    int
		want []Entry
	}{
		{
			name: "top two",
			n:    2,
			want: []Entry{{"apple", 5}, {"banana", 3}},
		},
		{
			name: "ties break by name ascending",
			n:    3,
			want: []Entry{{"apple", 5}, {"banana", 3}, {"cherry", 3}},
		},
		{
			name: "n exceeds distinct packages",
			n:    100,
			want: []Entry{{"apple", 5}, {"banana", 3}, {"cherry", 3}, {"date", 1}},
		},
		{
			name: "zero",
			n:    0,
			want: nil,
		},
		{
			name: "negative",
			n:    -1,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.TopN(tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopN(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestCounter_TopN_Empty(t *testing.T) {
	if got := NewCounter().TopN(10); got != nil {
		t.Errorf("TopN on empty counter = %v, want nil", got)
	}
}

// Repeated rankings over the same counter must be byte-identical; output
// fixtures depend on it.
func TestCounter_TopN_Deterministic(t *testing.T) {
	c := NewCounter()
	c.Record([]string{"a", "b", "c", "d", "e"})

	first := c.TopN(5)
	for i := 0; i < 10; i++ {
		if got := c.TopN(5); !reflect.DeepEqual(got, first) {
			t.Fatalf("TopN not deterministic: %v vs %v", got, first)
		}
	}
}
