package gorm

import (
	"context"

	"github.com/bornholm/saskatoon/internal/core/model"
	"github.com/bornholm/saskatoon/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// QueryHarvests implements [port.HarvestStore].
func (s *Store) QueryHarvests(ctx context.Context, opts port.QueryHarvestsOptions) ([]model.Harvest, int64, error) {
	var (
		harvests []*Harvest
		total    int64
		counts   map[uint]int64
	)

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		query := db.Model(&Harvest{})

		if opts.PropertyID != nil {
			query = query.Where("property_id = ?", uint(*opts.PropertyID))
		}

		if opts.Status != nil {
			query = query.Where("status = ?", string(*opts.Status))
		}

		query = query.Session(&gorm.Session{})

		if err := query.Count(&total).Error; err != nil {
			return errors.WithStack(err)
		}

		err := query.Scopes(queryPaginate(opts.Page, opts.Limit)).
			Order("start_date DESC, id DESC").
			Find(&harvests).Error
		if err != nil {
			return errors.WithStack(err)
		}

		ids := make([]uint, 0, len(harvests))
		for _, h := range harvests {
			ids = append(ids, h.ID)
		}

		c, err := countParticipants(db, ids...)
		if err != nil {
			return errors.WithStack(err)
		}

		counts = c

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	wrapped := make([]model.Harvest, 0, len(harvests))
	for _, h := range harvests {
		wrapped = append(wrapped, &wrappedHarvest{h: h, participants: counts[h.ID]})
	}

	return wrapped, total, nil
}

// GetHarvestByID implements [port.HarvestStore].
func (s *Store) GetHarvestByID(ctx context.Context, id model.HarvestID) (model.Harvest, error) {
	var (
		harvest Harvest
		count   int64
	)

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.First(&harvest, "id = ?", uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.WithStack(port.ErrNotFound)
			}

			return errors.WithStack(err)
		}

		counts, err := countParticipants(db, harvest.ID)
		if err != nil {
			return errors.WithStack(err)
		}

		count = counts[harvest.ID]

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedHarvest{h: &harvest, participants: count}, nil
}

// countParticipants sums the number of people of the accepted requests of
// each harvest.
func countParticipants(db *gorm.DB, harvestIDs ...uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(harvestIDs))
	if len(harvestIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		HarvestID uint
		Total     int64
	}

	err := db.Model(&RequestForParticipation{}).
		Select("harvest_id, SUM(number_of_people) AS total").
		Where("harvest_id IN ? AND is_accepted = ?", harvestIDs, true).
		Group("harvest_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, r := range rows {
		counts[r.HarvestID] = r.Total
	}

	return counts, nil
}

var _ port.HarvestStore = &Store{}
