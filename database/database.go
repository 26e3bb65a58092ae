package database

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/anytable/anytable/table"
	"github.com/anytable/anytable/tabular"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

type Config struct {
	Dir string
}

// Database is a directory of table journals, one file per table.
type Database struct {
	config *Config
	status string
	Tables map[string]*table.Table
	exit   chan struct{}
}

func NewDatabase(config *Config) *Database {
	return &Database{
		config: config,
		status: StatusOpening,
		Tables: map[string]*table.Table{},
		exit:   make(chan struct{}),
	}
}

func (db *Database) GetStatus() string {
	return db.status
}

// CreateTable creates a new journal for the given schema.
func (db *Database) CreateTable(name string, schema tabular.Schema) (*table.Table, error) {

	_, exists := db.Tables[name]
	if exists {
		return nil, fmt.Errorf("table '%s' already exists", name)
	}

	filename := path.Join(db.config.Dir, name)
	t, err := table.Create(filename, schema)
	if err != nil {
		return nil, err
	}

	db.Tables[name] = t

	return t, nil
}

func (db *Database) DropTable(name string) error {

	t, exists := db.Tables[name]
	if !exists {
		return fmt.Errorf("table '%s' not found", name)
	}

	delete(db.Tables, name) // TODO: protect section! not threadsafe

	return t.Drop()
}

func (db *Database) Load() error {

	fmt.Printf("Loading database %s...\n", db.config.Dir) // todo: move to logger
	dir := db.config.Dir
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}
	err = filepath.WalkDir(dir, func(filename string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		name := filename
		name = strings.TrimPrefix(name, dir)
		name = strings.TrimPrefix(name, "/")

		t0 := time.Now()
		t, err := table.Open(filename)
		if err != nil {
			fmt.Printf("ERROR: open table '%s': %s\n", filename, err.Error())
			return err
		}
		fmt.Println(name, len(t.Rows), time.Since(t0))

		db.Tables[name] = t

		return nil
	})

	if err != nil {
		db.status = StatusClosing
		return err
	}

	db.status = StatusOperating

	return nil
}

func (db *Database) Start() error {

	go db.Load()

	<-db.exit

	return nil
}

func (db *Database) Stop() error {

	defer close(db.exit)

	db.status = StatusClosing

	var lastErr error
	for name, t := range db.Tables {
		fmt.Printf("Closing '%s'...\n", name)
		err := t.Close()
		if err != nil {
			fmt.Printf("ERROR: close(%s): %s", name, err.Error())
			lastErr = err
		}
	}

	return lastErr
}
