package showcase

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleDocument = `{
  "emotion": [
    {
      "emotion_sequence": "happy -> sad",
      "text": "I won | then I lost",
      "reference_audio": {"happy": "audio/ref_happy.wav", "sad": "audio/ref_sad.wav"},
      "output_audio": "audio/out_1.wav",
      "baseline_audio": {"model 10": "audio/b10.wav", "model 2": "audio/b2.wav"}
    },
    {
      "emotion_sequence": "calm",
      "text": "steady",
      "reference_text": {"calm": "be calm"},
      "output_audio": "audio/out_2.wav",
      "baseline_audio": null
    }
  ],
  "duration": [
    {
      "text": "say [this (2x)] slowly",
      "reference_audio": "audio/d_ref.wav",
      "original_audio": "audio/d_orig.wav",
      "output_audio": "audio/d_out.wav",
      "baseline_audio": {"zeta": "audio/z.wav", "alpha": "audio/a.wav"},
      "comment": "ignored"
    }
  ]
}`

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(doc.Emotion) != 2 || len(doc.Duration) != 1 {
		t.Fatalf("unexpected table sizes: emotion %d, duration %d", len(doc.Emotion), len(doc.Duration))
	}

	wantRef := []Entry{{"happy", "audio/ref_happy.wav"}, {"sad", "audio/ref_sad.wav"}}
	if diff := cmp.Diff(wantRef, doc.Emotion[0].ReferenceAudio.Entries); diff != "" {
		t.Errorf("reference audio mismatch (-want +got):\n%s", diff)
	}

	// key order must survive decoding
	wantBase := []Entry{{"zeta", "audio/z.wav"}, {"alpha", "audio/a.wav"}}
	if diff := cmp.Diff(wantBase, doc.Duration[0].BaselineAudio.Entries); diff != "" {
		t.Errorf("baseline order mismatch (-want +got):\n%s", diff)
	}

	if doc.Emotion[1].ReferenceAudio.Present {
		t.Error("absent reference_audio reported as present")
	}
	if !doc.Emotion[1].ReferenceText.Present {
		t.Error("reference_text not decoded")
	}
	if doc.Emotion[1].BaselineAudio.Present {
		t.Error("null baseline_audio reported as present")
	}
	if got := doc.Duration[0].Text; got != "say [this (2x)] slowly" {
		t.Errorf("duration text = %q", got)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "<html>"},
		{"truncated", `{"emotion": [`},
		{"labeled is array", `{"emotion": [{"baseline_audio": ["a"]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.in)); err == nil {
				t.Errorf("Decode(%q) expected error", tt.in)
			}
		})
	}
}

func TestDecode_EmptyDocument(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(doc.Emotion) != 0 || len(doc.Duration) != 0 {
		t.Errorf("expected empty tables, got %+v", doc)
	}
}

func TestLabeled(t *testing.T) {
	var l Labeled
	if err := json.Unmarshal([]byte(`{"b": "1", "a": 2, "b": "3", "c": null}`), &l); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := []Entry{{"b", "3"}, {"a", "2"}, {"c", ""}}
	if diff := cmp.Diff(want, l.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if v, ok := l.Get("a"); !ok || v != "2" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}
	if _, ok := l.Get("missing"); ok {
		t.Error("Get(missing) succeeded")
	}

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got := string(data); got != `{"b":"3","a":"2","c":""}` {
		t.Errorf("Marshal() = %s", got)
	}

	var empty Labeled
	if err := json.Unmarshal([]byte(`{}`), &empty); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !empty.Present || empty.Len() != 0 {
		t.Errorf("empty object decoded as %+v", empty)
	}
}

func TestLabeledNatural(t *testing.T) {
	l := Labeled{Present: true, Entries: []Entry{{"model 10", "x"}, {"model 2", "y"}, {"Alpha", "z"}}}
	got := l.Natural()
	want := []Entry{{"Alpha", "z"}, {"model 2", "y"}, {"model 10", "x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Natural() mismatch (-want +got):\n%s", diff)
	}
	if l.Entries[0].Label != "model 10" {
		t.Error("Natural() modified original entries")
	}
}

func TestAudioRefs(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	refs := doc.AudioRefs()
	var got []string
	for _, r := range refs {
		got = append(got, r.String()+"="+r.URL)
	}
	want := []string{
		"emotion[0].reference:happy=audio/ref_happy.wav",
		"emotion[0].reference:sad=audio/ref_sad.wav",
		"emotion[0].output=audio/out_1.wav",
		"emotion[0].baseline:model 10=audio/b10.wav",
		"emotion[0].baseline:model 2=audio/b2.wav",
		"emotion[1].output=audio/out_2.wav",
		"duration[0].reference=audio/d_ref.wav",
		"duration[0].original=audio/d_orig.wav",
		"duration[0].output=audio/d_out.wav",
		"duration[0].baseline:zeta=audio/z.wav",
		"duration[0].baseline:alpha=audio/a.wav",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AudioRefs() mismatch (-want +got):\n%s", diff)
	}
}
