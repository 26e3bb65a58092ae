package service

import (
	"errors"

	"github.com/anytable/anytable/database"
	"github.com/anytable/anytable/table"
	"github.com/anytable/anytable/tabular"
)

var (
	ErrorTableNotFound      = errors.New("table not found")
	ErrorTableAlreadyExists = errors.New("table already exists")
)

// TableInfo is the public summary of a table.
type TableInfo struct {
	Name    string         `json:"name"`
	Total   int            `json:"total"`
	Indexes int            `json:"indexes"`
	Schema  tabular.Schema `json:"schema"`
}

type Servicer interface {
	CreateTable(name string, schema tabular.Schema) (*table.Table, error)
	GetTable(name string) (*table.Table, error)
	ListTables() []*TableInfo
	DropTable(name string) error
}

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{
		db: db,
	}
}

func (s *Service) CreateTable(name string, schema tabular.Schema) (*table.Table, error) {

	_, exists := s.db.Tables[name]
	if exists {
		return nil, ErrorTableAlreadyExists
	}

	return s.db.CreateTable(name, schema)
}

func (s *Service) GetTable(name string) (*table.Table, error) {

	t, exists := s.db.Tables[name]
	if !exists {
		return nil, ErrorTableNotFound
	}

	return t, nil
}

func (s *Service) ListTables() []*TableInfo {

	result := []*TableInfo{}

	for name, t := range s.db.Tables {
		result = append(result, Info(name, t))
	}

	return result
}

func (s *Service) DropTable(name string) error {

	_, exists := s.db.Tables[name]
	if !exists {
		return ErrorTableNotFound
	}

	return s.db.DropTable(name)
}

// Info builds the public summary of a table.
func Info(name string, t *table.Table) *TableInfo {
	schema, _ := t.Schema()
	return &TableInfo{
		Name:    name,
		Total:   len(t.Rows),
		Indexes: len(t.Indexes),
		Schema:  schema,
	}
}
