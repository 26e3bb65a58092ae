package tabular

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind is the declared type of a column. Every cell of a column must hold a
// value normalizable to the kind's canonical Go type.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool         // bool
	KindInt          // int64
	KindFloat        // float64
	KindString       // string
	KindTime         // time.Time
	KindBytes        // []byte
)

var kindNames = map[Kind]string{
	KindBool:   "bool",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindTime:   "time",
	KindBytes:  "bytes",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("invalid(%d)", int(k))
}

// ParseKind returns the kind named by s.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown kind '%s'", s)
}

// Zero returns the canonical zero value for the kind.
func (k Kind) Zero() any {
	switch k {
	case KindBool:
		return false
	case KindInt:
		return int64(0)
	case KindFloat:
		return float64(0)
	case KindString:
		return ""
	case KindTime:
		return time.Time{}
	case KindBytes:
		return []byte(nil)
	}
	return nil
}

// Accepts reports whether v can be normalized to the kind.
func (k Kind) Accepts(v any) bool {
	_, err := k.Normalize(v)
	return err == nil
}

// Normalize converts v to the kind's canonical Go type. Integer and float
// widths are widened, and whole float64 values are accepted for int columns
// so that JSON-decoded numbers survive the trip. Any other value fails with
// ErrTypeMismatch.
func (k Kind) Normalize(v any) (any, error) {
	switch k {
	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case KindInt:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int8:
			return int64(n), nil
		case int16:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case uint:
			return int64(n), nil
		case uint8:
			return int64(n), nil
		case uint16:
			return int64(n), nil
		case uint32:
			return int64(n), nil
		case float64:
			if n == float64(int64(n)) {
				return int64(n), nil
			}
		}
	case KindFloat:
		switch n := v.(type) {
		case float32:
			return float64(n), nil
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindTime:
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			parsed, err := time.Parse(time.RFC3339Nano, t)
			if err == nil {
				return parsed, nil
			}
		}
	case KindBytes:
		switch b := v.(type) {
		case []byte:
			return b, nil
		case string:
			return []byte(b), nil
		}
	}
	return nil, fmt.Errorf("%w: value %v (%T) is not a valid %s", ErrTypeMismatch, v, v, k)
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
