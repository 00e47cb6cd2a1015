package testsupport

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewNamedSQLiteMemoryDB opens a shared in-memory database private to name,
// so tests in the same binary do not see each other's rows.
func NewNamedSQLiteMemoryDB(name string) (*sql.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(strings.TrimSpace(name))
	if name == "" {
		return NewSQLiteMemoryDB()
	}
	return sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}
