package gorm

import (
	"context"

	"github.com/bornholm/saskatoon/internal/core/model"
	"github.com/bornholm/saskatoon/internal/core/port"
	"github.com/bornholm/saskatoon/internal/query"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var propertyPreloads = []string{
	"Owner.Person.AuthUser",
	"Owner.Organization",
	"Neighborhood",
	"City",
}

// QueryProperties implements [port.PropertyStore].
func (s *Store) QueryProperties(ctx context.Context, opts port.QueryPropertiesOptions) ([]model.Property, int64, error) {
	var (
		properties []*Property
		total      int64
		counts     map[uint]int64
	)

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		query := propertyFilters(opts)(db.Model(&Property{})).Session(&gorm.Session{})

		if err := query.Count(&total).Error; err != nil {
			return errors.WithStack(err)
		}

		query = query.Select("properties.*").
			Scopes(preload(propertyPreloads...), queryPaginate(opts.Page, opts.Limit)).
			Order("properties.id ASC")

		if err := query.Find(&properties).Error; err != nil {
			return errors.WithStack(err)
		}

		ids := make([]uint, 0, len(properties))
		for _, p := range properties {
			ids = append(ids, p.ID)
		}

		c, err := countHarvests(db, ids...)
		if err != nil {
			return errors.WithStack(err)
		}

		counts = c

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	wrapped := make([]model.Property, 0, len(properties))
	for _, p := range properties {
		wrapped = append(wrapped, &wrappedProperty{p: p, harvestCount: counts[p.ID]})
	}

	return wrapped, total, nil
}

// GetPropertyByID implements [port.PropertyStore].
func (s *Store) GetPropertyByID(ctx context.Context, id model.PropertyID) (model.Property, error) {
	var (
		property Property
		count    int64
	)

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		err := db.Scopes(preload(propertyPreloads...)).First(&property, "id = ?", uint(id)).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		counts, err := countHarvests(db, property.ID)
		if err != nil {
			return errors.WithStack(err)
		}

		count = counts[property.ID]

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedProperty{p: &property, harvestCount: count}, nil
}

func propertyFilters(opts port.QueryPropertiesOptions) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if opts.Search != "" {
			for _, j := range PropertyOwnerJoins {
				db = db.Joins(j)
			}

			db = db.Scopes(query.Search(opts.Search, PropertySearchFields...))
		}

		if opts.Authorized != nil {
			db = db.Where("properties.authorized = ?", *opts.Authorized)
		}

		if opts.Pending != nil {
			db = db.Where("properties.pending = ?", *opts.Pending)
		}

		if opts.OwnerType != nil {
			switch *opts.OwnerType {
			case model.OwnerTypePerson:
				db = db.Where(PropertyOwnerIsPersonCondition)
			case model.OwnerTypeOrganization:
				db = db.Where(PropertyOwnerIsOrganizationCondition)
			default:
				db = db.Where("NOT " + PropertyOwnerIsPersonCondition).
					Where("NOT " + PropertyOwnerIsOrganizationCondition)
			}
		}

		return db
	}
}

// CountHarvests returns the number of harvests attached to each of the given
// properties. Properties without harvest are absent from the result.
func countHarvests(db *gorm.DB, propertyIDs ...uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PropertyID uint
		Total      int64
	}

	err := db.Model(&Harvest{}).
		Select("property_id, COUNT(*) AS total").
		Where("property_id IN ?", propertyIDs).
		Group("property_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, r := range rows {
		counts[r.PropertyID] = r.Total
	}

	return counts, nil
}

func preload(associations ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, a := range associations {
			db = db.Preload(a)
		}

		return db
	}
}

func queryPaginate(page *int, limit *int) func(db *gorm.DB) *gorm.DB {
	return query.Paginate(page, limit)
}

var _ port.PropertyStore = &Store{}
