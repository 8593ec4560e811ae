package gorm

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Store struct {
	getDatabase func(ctx context.Context) (*gorm.DB, error)
}

// Database returns the underlying database, migrated on first use.
func (s *Store) Database(ctx context.Context) (*gorm.DB, error) {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return db.WithContext(ctx), nil
}

func (s *Store) withRetry(ctx context.Context, fn func(ctx context.Context, db *gorm.DB) error, codes ...sqlite3.ErrorCode) error {
	db, err := s.Database(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	const maxAttempts = 5
	backoff := 50 * time.Millisecond

	for attempt := 1; ; attempt++ {
		err := fn(ctx, db)
		if err == nil {
			return nil
		}

		if attempt >= maxAttempts || !isSQLiteErrorCode(err, codes...) {
			return errors.WithStack(err)
		}

		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-time.After(backoff):
			backoff *= 2
		}
	}
}

func isSQLiteErrorCode(err error, codes ...sqlite3.ErrorCode) bool {
	var sqliteErr *sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return slices.Contains(codes, sqliteErr.Code())
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		getDatabase: createGetDatabase(db),
	}
}

// Models lists every record managed by the store, in migration order.
func Models() []any {
	return []any{
		&AuthUser{},
		&Actor{},
		&Neighborhood{},
		&City{},
		&Person{},
		&Organization{},
		&TreeType{},
		&Property{},
		&PropertyImage{},
		&Harvest{},
		&RequestForParticipation{},
		&HarvestYield{},
		&HarvestImage{},
		&Comment{},
		&EquipmentType{},
		&Equipment{},
	}
}

func createGetDatabase(db *gorm.DB) func(ctx context.Context) (*gorm.DB, error) {
	var (
		migrateOnce sync.Once
		migrateErr  error
	)

	return func(ctx context.Context) (*gorm.DB, error) {
		migrateOnce.Do(func() {
			if err := db.AutoMigrate(Models()...); err != nil {
				migrateErr = errors.WithStack(err)
				return
			}
		})
		if migrateErr != nil {
			return nil, errors.WithStack(migrateErr)
		}

		return db, nil
	}
}
