package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bornholm/saskatoon/internal/http/handler/harvest"
	"github.com/pkg/errors"
)

type Property = harvest.Property

type QueryPropertiesOptions struct {
	Page      *int
	Limit     *int
	Search    string
	OwnerType string
}

type QueryPropertiesOptionFunc func(opts *QueryPropertiesOptions)

func WithQueryPropertiesPage(page int) QueryPropertiesOptionFunc {
	return func(opts *QueryPropertiesOptions) {
		opts.Page = &page
	}
}

func WithQueryPropertiesLimit(limit int) QueryPropertiesOptionFunc {
	return func(opts *QueryPropertiesOptions) {
		opts.Limit = &limit
	}
}

// WithQueryPropertiesSearch matches the address, the postal code (spaces
// ignored) and the owner of the properties.
func WithQueryPropertiesSearch(search string) QueryPropertiesOptionFunc {
	return func(opts *QueryPropertiesOptions) {
		opts.Search = search
	}
}

func WithQueryPropertiesOwnerType(ownerType string) QueryPropertiesOptionFunc {
	return func(opts *QueryPropertiesOptions) {
		opts.OwnerType = ownerType
	}
}

// QueryProperties returns a page of properties and the total number of
// matching properties.
func (c *Client) QueryProperties(ctx context.Context, funcs ...QueryPropertiesOptionFunc) ([]Property, int64, error) {
	opts := &QueryPropertiesOptions{}
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

	if opts.Search != "" {
		query.Set("q", opts.Search)
	}

	if opts.OwnerType != "" {
		query.Set("ownerType", opts.OwnerType)
	}

	var res harvest.ListPropertiesResponse

	if err := c.jsonRequest(ctx, http.MethodGet, "/properties", query, &res); err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return res.Properties, res.Total, nil
}

// GetProperty returns the property or ErrNotFound.
func (c *Client) GetProperty(ctx context.Context, id uint) (*Property, error) {
	var res harvest.GetPropertyResponse

	if err := c.jsonRequest(ctx, http.MethodGet, "/properties/"+strconv.FormatUint(uint64(id), 10), nil, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res.Property, nil
}
