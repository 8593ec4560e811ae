package port

import (
	"context"

	"github.com/bornholm/saskatoon/internal/core/model"
)

type QueryHarvestsOptions struct {
	Page       *int
	Limit      *int
	PropertyID *model.PropertyID
	Status     *model.HarvestStatus
}

type HarvestStore interface {
	QueryHarvests(ctx context.Context, opts QueryHarvestsOptions) ([]model.Harvest, int64, error)
	GetHarvestByID(ctx context.Context, id model.HarvestID) (model.Harvest, error)
}
