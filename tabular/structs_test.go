package tabular

import (
	"testing"

	. "github.com/fulldump/biff"
)

func TestFromStructs(t *testing.T) {
	type User struct {
		Id      int    `json:"id"`
		Name    string `json:"name"`
		Score   float64
		private bool
		Skipped []int `json:"-"`
	}

	// Setup
	source, err := FromStructs([]User{
		{Id: 1, Name: "Pablo", Score: 9.5},
		{Id: 2, Name: "Sara", Score: 8.0},
	})
	AssertNil(err)

	schema, _ := source.Schema()
	AssertEqual(schema.Names(), []string{"id", "name", "Score"})

	// Run
	set, err := Columns(source)
	AssertNil(err)

	// Check
	ids, _ := set.Ints("id")
	AssertEqual(ids, []int64{1, 2})
	names, _ := set.Strings("name")
	AssertEqual(names, []string{"Pablo", "Sara"})
	scores, _ := set.Floats("Score")
	AssertEqual(scores, []float64{9.5, 8.0})
}

func TestFromStructsPointers(t *testing.T) {
	type Point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}

	source, err := FromStructs([]*Point{{1, 2}, {3, 4}})
	AssertNil(err)

	it, err := Rows(source)
	AssertNil(err)

	AssertEqual(it.Next(), true)
	AssertEqualJson(it.Row().Map(), map[string]any{"x": 1, "y": 2})
	AssertEqual(it.Next(), true)
	AssertEqual(it.Next(), false)
	AssertNil(it.Err())
}

func TestFromStructsRejectsNonSlice(t *testing.T) {
	_, err := FromStructs(42)
	AssertNotNil(err)

	_, err = FromStructs([]int{1, 2})
	AssertNotNil(err)
}
