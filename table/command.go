package table

import "encoding/json"

// Command is one entry of the table journal. The first command of a journal
// is always "create" and carries the schema; the rest replay data changes.
type Command struct {
	Name      string          `json:"name"`
	Uuid      string          `json:"uuid"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	commandCreate = "create"
	commandInsert = "insert"
	commandRemove = "remove"
	commandPatch  = "patch"
	commandIndex  = "index"
)
