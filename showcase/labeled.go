package showcase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/maruel/natural"
)

// Entry is a single label/value pair.
type Entry struct {
	Label string
	Value string
}

// Labeled is JSON object mapping labels to strings. Unlike map it keeps keys
// in document order - this is the order columns are presented in.
type Labeled struct {
	Entries []Entry
	// Present is set when object was in the document, even if empty.
	Present bool
}

// UnmarshalJSON reads object token by token to preserve key order. Null values
// become empty strings, other non string values are kept in their JSON form.
func (l *Labeled) UnmarshalJSON(data []byte) error {
	*l = Labeled{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("labeled values must be an object, got %v", tok)
	}
	l.Present = true

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("bad value for %q: %w", key, err)
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			value = string(raw)
		}
		l.set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON keeps key order.
func (l Labeled) MarshalJSON() ([]byte, error) {
	if !l.Present {
		return []byte("null"), nil
	}
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, e := range l.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(e.Label)
		v, _ := json.Marshal(e.Value)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// duplicate keys - last one wins, as in browser, but position of the first
// one is kept
func (l *Labeled) set(key, value string) {
	if i := slices.IndexFunc(l.Entries, func(e Entry) bool { return e.Label == key }); i >= 0 {
		l.Entries[i].Value = value
		return
	}
	l.Entries = append(l.Entries, Entry{Label: key, Value: value})
}

// Get returns value for label.
func (l Labeled) Get(label string) (string, bool) {
	for _, e := range l.Entries {
		if e.Label == label {
			return e.Value, true
		}
	}
	return "", false
}

// Len returns number of entries.
func (l Labeled) Len() int {
	return len(l.Entries)
}

// Natural returns copy of entries sorted by label in natural order
// ("model 2" before "model 10").
func (l Labeled) Natural() []Entry {
	res := slices.Clone(l.Entries)
	slices.SortStableFunc(res, func(a, b Entry) int {
		switch {
		case natural.Less(a.Label, b.Label):
			return -1
		case natural.Less(b.Label, a.Label):
			return 1
		}
		return 0
	})
	return res
}
