// Package mock provides in-process stand-ins for the external services used by the BDD suite.
package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory SQLite database holding the ledger schema.
type Db struct {
	DbConn *gorm.DB
	models []any
	tables map[string]any
}

// NewDb returns the suite database, creating and migrating it on first use.
func NewDb(models []any) *Db {
	once.Do(func() {
		db = open(models)
	})
	return db
}

func open(models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		models: models,
		tables: make(map[string]any, len(models)),
	}

	if err := newDbMock.init(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

func (d *Db) init() error {
	if err := d.DbConn.AutoMigrate(d.models...); err != nil {
		return err
	}

	for _, model := range d.models {
		stmt := &gorm.Statement{DB: d.DbConn}
		if err := stmt.Parse(model); err != nil {
			return err
		}
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
		d.tables[stmt.Schema.Table] = model
	}
	return nil
}

// ClearDB deletes every row, children first.
func (d *Db) ClearDB() error {
	for i := len(d.models) - 1; i >= 0; i-- {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(d.models[i]).Error
		if err != nil {
			return fmt.Errorf("failed to clear %T: %w", d.models[i], err)
		}
	}
	return nil
}

// GetModel returns the model stored in table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.tables[table]
	return model, ok
}
