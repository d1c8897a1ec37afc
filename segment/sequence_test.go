package segment

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		delim string
		want  []string
	}{
		{"sequence", "happy -> sad->angry", SequenceDelimiter, []string{"happy", "sad", "angry"}},
		{"text", " first part | second part ", TextDelimiter, []string{"first part", "second part"}},
		{"drops empty", "a || b |  |", TextDelimiter, []string{"a", "b"}},
		{"no delimiter", "single", TextDelimiter, []string{"single"}},
		{"nothing", "  ", TextDelimiter, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Split(tt.text, tt.delim)); diff != "" {
				t.Errorf("Split(%q, %q) mismatch (-want +got):\n%s", tt.text, tt.delim, diff)
			}
		})
	}
}

func TestColorAt(t *testing.T) {
	if PaletteSize != 6 {
		t.Fatalf("PaletteSize = %d, want 6", PaletteSize)
	}
	if got := ColorAt(0).Text; got != "#b42318" {
		t.Errorf("ColorAt(0).Text = %q", got)
	}
	for i := range 3 * PaletteSize {
		if ColorAt(i) != ColorAt(i+PaletteSize) {
			t.Errorf("ColorAt(%d) does not cycle", i)
		}
	}
	if ColorAt(-1) != ColorAt(PaletteSize-1) {
		t.Errorf("ColorAt(-1) = %+v, want %+v", ColorAt(-1), ColorAt(PaletteSize-1))
	}
}
