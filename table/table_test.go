package table

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	. "github.com/fulldump/biff"

	"github.com/anytable/anytable/tabular"
)

func userSchema() tabular.Schema {
	return tabular.MustSchema(
		tabular.Column{Name: "id", Kind: tabular.KindString},
		tabular.Column{Name: "name", Kind: tabular.KindString},
		tabular.Column{Name: "age", Kind: tabular.KindInt},
	)
}

type User struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestInsert(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		tab, err := Create(filename, userSchema())
		AssertNil(err)
		defer tab.Close()

		// Run
		_, err = tab.Insert(&User{"1", "Fulanez", 33})
		AssertNil(err)

		// Check: journal carries create + insert
		fileContent, _ := os.ReadFile(filename)
		decoder := json.NewDecoder(bytes.NewReader(fileContent))

		command := &Command{}
		decoder.Decode(command)
		AssertEqual(command.Name, "create")

		command = &Command{}
		decoder.Decode(command)
		AssertEqual(command.Name, "insert")
		AssertEqual(string(command.Payload), `{"id":"1","name":"Fulanez","age":33}`)
	})
}

func TestInsertRejectsMissingColumn(t *testing.T) {
	Environment(func(filename string) {
		tab, _ := Create(filename, userSchema())
		defer tab.Close()

		_, err := tab.Insert(map[string]interface{}{"id": "1", "name": "Fulanez"})
		AssertNotNil(err)
		AssertEqual(len(tab.Rows), 0)
	})
}

func TestInsertRejectsWrongType(t *testing.T) {
	Environment(func(filename string) {
		tab, _ := Create(filename, userSchema())
		defer tab.Close()

		_, err := tab.Insert(map[string]interface{}{"id": "1", "name": "Fulanez", "age": "old"})
		AssertNotNil(err)
	})
}

func TestOpenReplaysJournal(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		tab, _ := Create(filename, userSchema())
		tab.Insert(&User{"1", "Pablo", 30})
		tab.Insert(&User{"2", "Sara", 31})
		tab.Close()

		// Run
		reopened, err := Open(filename)
		AssertNil(err)
		defer reopened.Close()

		// Check
		AssertEqual(len(reopened.Rows), 2)
		schema, _ := reopened.Schema()
		AssertEqual(schema.Equal(userSchema()), true)

		user := &User{}
		reopened.FindOne(user)
		AssertEqual(user.Name, "Pablo")
	})
}

func TestRemove(t *testing.T) {
	Environment(func(filename string) {

		tab, _ := Create(filename, userSchema())
		row, _ := tab.Insert(&User{"1", "Pablo", 30})
		tab.Insert(&User{"2", "Sara", 31})

		AssertNil(tab.Remove(row))
		AssertEqual(len(tab.Rows), 1)
		tab.Close()

		// removal survives a reopen
		reopened, err := Open(filename)
		AssertNil(err)
		defer reopened.Close()
		AssertEqual(len(reopened.Rows), 1)

		user := &User{}
		reopened.FindOne(user)
		AssertEqual(user.Name, "Sara")
	})
}

func TestPatch(t *testing.T) {
	Environment(func(filename string) {

		tab, _ := Create(filename, userSchema())
		row, _ := tab.Insert(&User{"1", "Pablo", 30})

		// Run
		err := tab.Patch(row, map[string]interface{}{"age": 31})
		AssertNil(err)

		// Check
		user := &User{}
		tab.FindOne(user)
		AssertEqual(user.Age, 31)
		tab.Close()

		reopened, err := Open(filename)
		AssertNil(err)
		defer reopened.Close()
		user = &User{}
		reopened.FindOne(user)
		AssertEqual(user.Age, 31)
	})
}

func TestPatchRejectsSchemaViolation(t *testing.T) {
	Environment(func(filename string) {
		tab, _ := Create(filename, userSchema())
		defer tab.Close()
		row, _ := tab.Insert(&User{"1", "Pablo", 30})

		err := tab.Patch(row, map[string]interface{}{"age": "old"})
		AssertNotNil(err)

		user := &User{}
		tab.FindOne(user)
		AssertEqual(user.Age, 30)
	})
}

func TestSetCell(t *testing.T) {
	Environment(func(filename string) {
		tab, _ := Create(filename, userSchema())
		defer tab.Close()
		row, _ := tab.Insert(&User{"1", "Pablo", 30})

		AssertNil(tab.SetCell(row, "name", "Pablo II"))

		user := &User{}
		tab.FindOne(user)
		AssertEqual(user.Name, "Pablo II")

		AssertNotNil(tab.SetCell(row, "age", "old"))
		AssertNotNil(tab.SetCell(row, "nope", 1))
	})
}

func TestUniqueIndex(t *testing.T) {
	Environment(func(filename string) {

		// Setup
		tab, _ := Create(filename, userSchema())
		defer tab.Close()
		tab.Insert(&User{"1", "Pablo", 30})
		tab.Insert(&User{"2", "Sara", 31})

		// Run
		err := tab.CreateIndex(&IndexOptions{Column: "id"})
		AssertNil(err)

		// Check
		user := &User{}
		AssertNil(tab.FindBy("id", "2", user))
		AssertEqual(user.Name, "Sara")

		// conflicts are rejected
		_, err = tab.Insert(&User{"2", "Impostor", 99})
		AssertNotNil(err)
	})
}

func TestOrderedIndex(t *testing.T) {
	Environment(func(filename string) {

		tab, _ := Create(filename, userSchema())
		defer tab.Close()
		tab.Insert(&User{"1", "Pablo", 33})
		tab.Insert(&User{"2", "Sara", 29})
		tab.Insert(&User{"3", "Nadia", 41})

		AssertNil(tab.CreateIndex(&IndexOptions{Column: "age", Type: IndexTypeOrdered}))

		index := tab.Indexes["age"].(*OrderedIndex)

		names := []string{}
		index.Traverse(false, func(row *Row) bool {
			user := &User{}
			unmarshalRow(row, user)
			names = append(names, user.Name)
			return true
		})
		AssertEqual(names, []string{"Sara", "Pablo", "Nadia"})

		names = names[:0]
		index.Traverse(true, func(row *Row) bool {
			user := &User{}
			unmarshalRow(row, user)
			names = append(names, user.Name)
			return true
		})
		AssertEqual(names, []string{"Nadia", "Pablo", "Sara"})
	})
}

func TestFind(t *testing.T) {
	Environment(func(filename string) {

		tab, _ := Create(filename, userSchema())
		defer tab.Close()
		tab.Insert(&User{"1", "Pablo", 33})
		tab.Insert(&User{"2", "Sara", 29})
		tab.Insert(&User{"3", "Nadia", 33})

		// filters compare against JSON-decoded rows, so numbers are float64
		names := []string{}
		err := tab.Find(map[string]interface{}{"age": float64(33)}, func(row *Row) bool {
			user := &User{}
			unmarshalRow(row, user)
			names = append(names, user.Name)
			return true
		})

		AssertNil(err)
		AssertEqual(names, []string{"Pablo", "Nadia"})
	})
}
