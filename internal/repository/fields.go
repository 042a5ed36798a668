package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
)

var ErrMalformedDocument = errors.New("malformed document")

// text decodes any scalar into a string. Null and composite values become "".
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*t = ""
			return nil
		}
		*t = text(s)
	case 't', 'f':
		*t = text(string(b))
	case 'n', '{', '[':
		*t = ""
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			*t = ""
			return nil
		}
		*t = text(n.String())
	}
	return nil
}

// number decodes an integer from a JSON number or numeric string; anything
// else is 0.
type number int

func (n *number) UnmarshalJSON(b []byte) error {
	var t text
	_ = t.UnmarshalJSON(b)
	if v, err := strconv.Atoi(string(t)); err == nil {
		*n = number(v)
		return nil
	}
	if f, err := strconv.ParseFloat(string(t), 64); err == nil {
		*n = number(int(f))
		return nil
	}
	*n = 0
	return nil
}

// stringList keeps the string entries of a JSON array in order. Keyed
// objects ({"0": "go", "1": "sql"}) are read in key order, the way sparse
// arrays come back from tree-shaped stores.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	out := make([]string, 0)
	if len(b) == 0 {
		*l = out
		return nil
	}
	switch b[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(b, &items); err == nil {
			for _, it := range items {
				var s string
				if json.Unmarshal(it, &s) == nil && s != "" {
					out = append(out, s)
				}
			}
		}
	case '{':
		var m map[string]json.RawMessage
		if err := json.Unmarshal(b, &m); err == nil {
			type entry struct {
				idx int
				val string
			}
			entries := make([]entry, 0, len(m))
			for k, raw := range m {
				idx, err := strconv.Atoi(k)
				if err != nil {
					continue
				}
				var s string
				if json.Unmarshal(raw, &s) == nil && s != "" {
					entries = append(entries, entry{idx: idx, val: s})
				}
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })
			for _, e := range entries {
				out = append(out, e.val)
			}
		}
	}
	*l = out
	return nil
}

// levelMap is a skill name to level label map. Non-string levels are kept
// as "" so the skill still counts as present.
type levelMap map[string]string

func (m *levelMap) UnmarshalJSON(b []byte) error {
	out := map[string]string{}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err == nil {
		for k, v := range raw {
			var t text
			_ = t.UnmarshalJSON(v)
			out[k] = string(t)
		}
	}
	*m = out
	return nil
}

func decodeObject(b []byte, out any) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return ErrMalformedDocument
	}
	if err := json.Unmarshal(b, out); err != nil {
		return errors.Join(ErrMalformedDocument, err)
	}
	return nil
}
