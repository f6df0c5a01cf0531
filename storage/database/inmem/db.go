package inmemdb

import (
	"context"
	"sync"

	"github.com/dance10/webapps/core"
)

// DB keeps every table in memory. Reads return copies.
type DB struct {
	tables map[string][]core.Row
	mutex  sync.RWMutex
}

var _ core.RowStore = (*DB)(nil)

func Open() *DB {
	return &DB{tables: make(map[string][]core.Row)}
}

func (db *DB) ReadTable(_ context.Context, name string) ([]core.Row, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	rows := make([]core.Row, 0, len(db.tables[name]))
	for _, r := range db.tables[name] {
		rows = append(rows, r.Clone())
	}
	return rows, nil
}

func (db *DB) AppendRows(_ context.Context, name string, rows ...core.Row) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for _, r := range rows {
		db.tables[name] = append(db.tables[name], r.Clone())
	}
	return nil
}

func (db *DB) UpdateRow(_ context.Context, name string, index int, row core.Row) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	table := db.tables[name]
	if index < 0 || index >= len(table) {
		return core.ErrRowNotFound
	}
	table[index] = row.Clone()
	return nil
}

func (db *DB) DeleteRow(_ context.Context, name string, index int) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	table := db.tables[name]
	if index < 0 || index >= len(table) {
		return core.ErrRowNotFound
	}
	db.tables[name] = append(table[:index], table[index+1:]...)
	return nil
}
