package content

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// text decodes any JSON scalar into a string; objects, arrays and null
// decode to "".
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
		*t = text(b)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		*t = text(b)
	default:
		*t = ""
	}
	return nil
}

// flag decodes JSON true as true and everything else as false.
type flag bool

func (f *flag) UnmarshalJSON(b []byte) error {
	*f = flag(bytes.Equal(bytes.TrimSpace(b), []byte("true")))
	return nil
}

// number decodes JSON numbers and numeric strings into an int.
type number int

func (n *number) UnmarshalJSON(b []byte) error {
	var t text
	_ = t.UnmarshalJSON(b)
	if f, err := strconv.ParseFloat(string(t), 64); err == nil {
		*n = number(int(f))
		return nil
	}
	*n = 0
	return nil
}

// fraction decodes a JSON number into a float64, defaulting to 0.
type fraction float64

func (f *fraction) UnmarshalJSON(b []byte) error {
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		*f = 0
		return nil
	}
	*f = fraction(v)
	return nil
}

// list decodes a JSON array element by element, dropping elements that fail
// to decode. Anything other than an array decodes to an empty list.
type list[T any] []T

func (l *list[T]) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*l = nil
		return nil
	}
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// optional decodes a JSON object into *T, leaving it nil for null or for
// values of the wrong shape.
type optional[T any] struct {
	v *T
}

func (o *optional[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		o.v = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		o.v = nil
		return nil
	}
	o.v = &v
	return nil
}

func (o optional[T]) get() *T { return o.v }
