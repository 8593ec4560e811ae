package cache

import (
	"context"
	"testing"
	"time"

	gormAdapter "github.com/bornholm/saskatoon/internal/adapter/gorm"
	"github.com/bornholm/saskatoon/internal/adapter/gorm/testsuite"
	"github.com/bornholm/saskatoon/internal/core/model"
	"github.com/bornholm/saskatoon/internal/core/port"
	"github.com/pkg/errors"
)

type countingBackend struct {
	Backend
	getPropertyCalls int
}

func (b *countingBackend) GetPropertyByID(ctx context.Context, id model.PropertyID) (model.Property, error) {
	b.getPropertyCalls++
	return b.Backend.GetPropertyByID(ctx, id)
}

func TestStoreGetPropertyByID(t *testing.T) {
	ctx := context.Background()

	db := testsuite.NewDatabase(t)
	fixtures := testsuite.Seed(t, db)

	backend := &countingBackend{Backend: gormAdapter.NewStore(db)}
	store := NewStore(backend, 10, time.Minute)

	id := model.PropertyID(fixtures.PersonProperty.ID)

	for range 3 {
		property, err := store.GetPropertyByID(ctx, id)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := id, property.ID(); e != g {
			t.Errorf("property.ID(): expected %d, got %d", e, g)
		}
	}

	if e, g := 1, backend.getPropertyCalls; e != g {
		t.Errorf("backend.getPropertyCalls: expected %d, got %d", e, g)
	}

	if _, err := store.GetPropertyByID(ctx, 9999); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("GetPropertyByID(9999): expected port.ErrNotFound, got %v", err)
	}

	if _, _, err := store.QueryProperties(ctx, port.QueryPropertiesOptions{}); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := store.GetPropertyByID(ctx, model.PropertyID(fixtures.OwnerlessProperty.ID)); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// Served from the query results
	if e, g := 2, backend.getPropertyCalls; e != g {
		t.Errorf("backend.getPropertyCalls: expected %d, got %d", e, g)
	}
}

func TestStorePurge(t *testing.T) {
	ctx := context.Background()

	db := testsuite.NewDatabase(t)
	fixtures := testsuite.Seed(t, db)

	backend := &countingBackend{Backend: gormAdapter.NewStore(db)}
	store := NewStore(backend, 10, time.Minute)

	id := model.PropertyID(fixtures.PersonProperty.ID)

	if _, err := store.GetPropertyByID(ctx, id); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := db.Model(fixtures.PersonProperty).Update("street", "Rue Rivard").Error; err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	store.Purge()

	property, err := store.GetPropertyByID(ctx, id)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "4521 Rue Rivard", property.ShortAddress(); e != g {
		t.Errorf("property.ShortAddress(): expected '%s', got '%s'", e, g)
	}

	if e, g := 2, backend.getPropertyCalls; e != g {
		t.Errorf("backend.getPropertyCalls: expected %d, got %d", e, g)
	}
}

type testItem struct {
	keys []string
}

func (i *testItem) CacheKeys() []string {
	return i.keys
}

func TestMultiIndexCacheRemove(t *testing.T) {
	cache := NewMultiIndexCache[*testItem]("test", 10, time.Minute)

	cache.Add(&testItem{keys: []string{"id:1", "code:H2J2L3"}})

	if _, exists := cache.Get("code:H2J2L3"); !exists {
		t.Fatalf("item should be reachable through its second key")
	}

	cache.Remove("id:1")

	if _, exists := cache.Get("code:H2J2L3"); exists {
		t.Errorf("item should be removed from every index")
	}

	if e, g := 0, cache.Len(); e != g {
		t.Errorf("cache.Len(): expected %d, got %d", e, g)
	}
}
