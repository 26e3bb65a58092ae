package tabular

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	. "github.com/fulldump/biff"
)

func TestNewSchema(t *testing.T) {
	schema, err := NewSchema(
		Column{Name: "id", Kind: KindInt},
		Column{Name: "name", Kind: KindString},
	)

	AssertNil(err)
	AssertEqual(schema.Len(), 2)
	AssertEqual(schema.Names(), []string{"id", "name"})
	AssertEqual(schema.Index("name"), 2)
	AssertEqual(schema.Index("missing"), 0)

	col, err := schema.Column(1)
	AssertNil(err)
	AssertEqual(col, Column{Name: "id", Kind: KindInt})

	_, err = schema.Column(3)
	AssertEqual(errors.Is(err, ErrInvalidColumn), true)
}

func TestNewSchemaDuplicateName(t *testing.T) {
	_, err := NewSchema(
		Column{Name: "a", Kind: KindInt},
		Column{Name: "a", Kind: KindString},
	)
	AssertEqual(errors.Is(err, ErrDuplicateColumn), true)
}

func TestNewSchemaEmptyName(t *testing.T) {
	_, err := NewSchema(Column{Name: "", Kind: KindInt})
	AssertNotNil(err)
}

func TestNewSchemaInvalidKind(t *testing.T) {
	_, err := NewSchema(Column{Name: "a", Kind: Kind(99)})
	AssertNotNil(err)
}

func TestSchemaJsonRoundTrip(t *testing.T) {
	schema := MustSchema(
		Column{Name: "id", Kind: KindInt},
		Column{Name: "when", Kind: KindTime},
	)

	data, err := json.Marshal(schema)
	AssertNil(err)
	AssertEqual(string(data), `[{"name":"id","kind":"int"},{"name":"when","kind":"time"}]`)

	decoded := Schema{}
	AssertNil(json.Unmarshal(data, &decoded))
	AssertEqual(decoded.Equal(schema), true)
}

func TestKindNormalize(t *testing.T) {
	v, err := KindInt.Normalize(7)
	AssertNil(err)
	AssertEqual(v, int64(7))

	v, err = KindInt.Normalize(float64(7)) // JSON numbers decode as float64
	AssertNil(err)
	AssertEqual(v, int64(7))

	_, err = KindInt.Normalize(7.5)
	AssertEqual(errors.Is(err, ErrTypeMismatch), true)

	v, err = KindFloat.Normalize(float32(1.5))
	AssertNil(err)
	AssertEqual(v, float64(1.5))

	_, err = KindString.Normalize(42)
	AssertEqual(errors.Is(err, ErrTypeMismatch), true)

	when := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	v, err = KindTime.Normalize(when.Format(time.RFC3339Nano))
	AssertNil(err)
	AssertEqual(v, when)

	v, err = KindBytes.Normalize("raw")
	AssertNil(err)
	AssertEqual(v, []byte("raw"))
}

func TestKindParse(t *testing.T) {
	for _, name := range []string{"bool", "int", "float", "string", "time", "bytes"} {
		k, err := ParseKind(name)
		AssertNil(err)
		AssertEqual(k.String(), name)
	}

	_, err := ParseKind("complex")
	AssertNotNil(err)
}

func TestKindAcceptsAndZero(t *testing.T) {
	AssertEqual(KindBool.Accepts(true), true)
	AssertEqual(KindBool.Accepts("true"), false)
	AssertEqual(KindInt.Zero(), int64(0))
	AssertEqual(KindString.Zero(), "")
}
