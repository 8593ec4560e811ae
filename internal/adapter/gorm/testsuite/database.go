package testsuite

import (
	"testing"

	gormAdapter "github.com/bornholm/saskatoon/internal/adapter/gorm"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a migrated in-memory database closed with the test.
func NewDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(gormlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	internalDB, err := db.DB()
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// Every connection to :memory: opens its own database
	internalDB.SetMaxOpenConns(1)
	internalDB.SetConnMaxLifetime(0)

	t.Cleanup(func() {
		if err := internalDB.Close(); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	})

	if err := db.Exec("PRAGMA foreign_keys=on").Error; err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := db.AutoMigrate(gormAdapter.Models()...); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return db
}
