package mock

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-assistant/backend/internal/integration/persistence/model"
)

var dbOnce sync.Once
var db *Db

// Db wraps a shared in-memory SQLite connection used by the BDD suite.
type Db struct {
	DbConn *gorm.DB
}

// NewDb opens (once) an in-memory database with the ledger schema migrated.
func NewDb() *Db {
	dbOnce.Do(func() {
		db = open()
	})
	return db
}

func open() *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// A single connection keeps the shared in-memory database alive.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := dbConn.AutoMigrate(&model.LedgerEntryModel{}); err != nil {
		panic(fmt.Sprintf("failed to migrate test database. err: %s", err.Error()))
	}

	return &Db{DbConn: dbConn}
}

// Reset deletes all rows and restarts autoincrement counters so every
// scenario starts from a clean ledger.
func (d *Db) Reset() error {
	if err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.LedgerEntryModel{}).Error; err != nil {
		return err
	}

	err := d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", model.LedgerEntryModel{}.TableName()).Error
	if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
		return err
	}

	return nil
}
