package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	gormAdapter "github.com/bornholm/saskatoon/internal/adapter/gorm"
	"github.com/bornholm/saskatoon/internal/adapter/gorm/testsuite"
	"github.com/bornholm/saskatoon/internal/http/handler/harvest"
	"github.com/pkg/errors"
)

func newTestClient(t *testing.T) (*Client, *testsuite.Fixtures) {
	t.Helper()

	db := testsuite.NewDatabase(t)
	fixtures := testsuite.Seed(t, db)

	store := gormAdapter.NewStore(db)

	server := httptest.NewServer(harvest.NewHandler(store, store))
	t.Cleanup(server.Close)

	baseURL, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return New(WithBaseURL(baseURL)), fixtures
}

func TestClientProperties(t *testing.T) {
	client, fixtures := newTestClient(t)
	ctx := context.Background()

	properties, total, err := client.QueryProperties(ctx, WithQueryPropertiesSearch("H2J 2L3"))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), total; e != g {
		t.Errorf("total: expected %d, got %d", e, g)
	}

	if e, g := 1, len(properties); e != g {
		t.Fatalf("len(properties): expected %d, got %d", e, g)
	}

	if e, g := fixtures.PersonProperty.ID, properties[0].ID; e != g {
		t.Errorf("properties[0].ID: expected %d, got %d", e, g)
	}

	property, err := client.GetProperty(ctx, fixtures.OrganizationProperty.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), property.Harvests; e != g {
		t.Errorf("property.Harvests: expected %d, got %d", e, g)
	}

	if _, err := client.GetProperty(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClientHarvests(t *testing.T) {
	client, fixtures := newTestClient(t)
	ctx := context.Background()

	harvests, total, err := client.QueryHarvests(ctx, WithQueryHarvestsProperty(fixtures.PersonProperty.ID), WithQueryHarvestsLimit(1))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(2), total; e != g {
		t.Errorf("total: expected %d, got %d", e, g)
	}

	if e, g := 1, len(harvests); e != g {
		t.Errorf("len(harvests): expected %d, got %d", e, g)
	}

	harvest, err := client.GetHarvest(ctx, fixtures.Harvests[2].ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "orphan", harvest.Status; e != g {
		t.Errorf("harvest.Status: expected '%s', got '%s'", e, g)
	}
}

func TestRateLimitTransport(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	httpClient := &http.Client{
		Transport: &RateLimitTransport{MaxRetries: 5, DefaultWait: time.Millisecond},
	}

	res, err := httpClient.Get(server.URL)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer res.Body.Close()

	if e, g := http.StatusOK, res.StatusCode; e != g {
		t.Errorf("res.StatusCode: expected %d, got %d", e, g)
	}

	if e, g := int32(3), calls.Load(); e != g {
		t.Errorf("calls: expected %d, got %d", e, g)
	}
}

func TestWithRetries(t *testing.T) {
	opts := NewOptions(WithRetries(2, 10*time.Millisecond))

	transport, ok := opts.HTTPClient.Transport.(*RateLimitTransport)
	if !ok {
		t.Fatalf("unexpected transport type '%T'", opts.HTTPClient.Transport)
	}

	if e, g := 2, transport.MaxRetries; e != g {
		t.Errorf("transport.MaxRetries: expected %d, got %d", e, g)
	}

	if e, g := 10*time.Millisecond, transport.DefaultWait; e != g {
		t.Errorf("transport.DefaultWait: expected %v, got %v", e, g)
	}
}

func TestRateLimitTransportDelay(t *testing.T) {
	transport := &RateLimitTransport{DefaultWait: 100 * time.Millisecond}

	type testCase struct {
		RetryAfter string
		Attempt    int
		Min        time.Duration
		Max        time.Duration
	}

	testCases := []testCase{
		{RetryAfter: "2", Attempt: 0, Min: 2 * time.Second, Max: 2200 * time.Millisecond},
		{RetryAfter: "", Attempt: 0, Min: 100 * time.Millisecond, Max: 110 * time.Millisecond},
		{RetryAfter: "", Attempt: 2, Min: 400 * time.Millisecond, Max: 440 * time.Millisecond},
		{RetryAfter: "", Attempt: 20, Min: maxBackoff, Max: maxBackoff + maxBackoff/10},
		{RetryAfter: "Wed, 21 Oct 2015 07:28:00 GMT", Attempt: 0, Min: 0, Max: 0},
	}

	for _, tc := range testCases {
		delay := transport.delay(tc.RetryAfter, tc.Attempt)
		if delay < tc.Min || delay > tc.Max {
			t.Errorf("delay(%q, %d): expected between %v and %v, got %v", tc.RetryAfter, tc.Attempt, tc.Min, tc.Max, delay)
		}
	}
}
