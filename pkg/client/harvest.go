package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bornholm/saskatoon/internal/http/handler/harvest"
	"github.com/pkg/errors"
)

type Harvest = harvest.Harvest

type QueryHarvestsOptions struct {
	Page       *int
	Limit      *int
	PropertyID *uint
	Status     string
}

type QueryHarvestsOptionFunc func(opts *QueryHarvestsOptions)

func WithQueryHarvestsPage(page int) QueryHarvestsOptionFunc {
	return func(opts *QueryHarvestsOptions) {
		opts.Page = &page
	}
}

func WithQueryHarvestsLimit(limit int) QueryHarvestsOptionFunc {
	return func(opts *QueryHarvestsOptions) {
		opts.Limit = &limit
	}
}

func WithQueryHarvestsProperty(propertyID uint) QueryHarvestsOptionFunc {
	return func(opts *QueryHarvestsOptions) {
		opts.PropertyID = &propertyID
	}
}

func WithQueryHarvestsStatus(status string) QueryHarvestsOptionFunc {
	return func(opts *QueryHarvestsOptions) {
		opts.Status = status
	}
}

func (c *Client) QueryHarvests(ctx context.Context, funcs ...QueryHarvestsOptionFunc) ([]Harvest, int64, error) {
	opts := &QueryHarvestsOptions{}
	for _, fn := range funcs {
		fn(opts)
	}

	query := url.Values{}

	if opts.Page != nil {
		query.Set("page", strconv.Itoa(*opts.Page))
	}

	if opts.Limit != nil {
		query.Set("limit", strconv.Itoa(*opts.Limit))
	}

	if opts.PropertyID != nil {
		query.Set("property", strconv.FormatUint(uint64(*opts.PropertyID), 10))
	}

	if opts.Status != "" {
		query.Set("status", opts.Status)
	}

	var res harvest.ListHarvestsResponse

	if err := c.jsonRequest(ctx, http.MethodGet, "/harvests", query, &res); err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return res.Harvests, res.Total, nil
}

func (c *Client) GetHarvest(ctx context.Context, id uint) (*Harvest, error) {
	var res harvest.GetHarvestResponse

	if err := c.jsonRequest(ctx, http.MethodGet, "/harvests/"+strconv.FormatUint(uint64(id), 10), nil, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res.Harvest, nil
}
