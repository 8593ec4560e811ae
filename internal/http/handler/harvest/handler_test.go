package harvest_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	gormAdapter "github.com/bornholm/saskatoon/internal/adapter/gorm"
	"github.com/bornholm/saskatoon/internal/adapter/gorm/testsuite"
	"github.com/bornholm/saskatoon/internal/http/handler/harvest"
	"github.com/pkg/errors"
)

func newTestHandler(t *testing.T) (*harvest.Handler, *testsuite.Fixtures) {
	t.Helper()

	db := testsuite.NewDatabase(t)
	fixtures := testsuite.Seed(t, db)

	store := gormAdapter.NewStore(db)

	return harvest.NewHandler(store, store, harvest.WithAllowedOrigins("https://map.example.org")), fixtures
}

func TestListProperties(t *testing.T) {
	handler, fixtures := newTestHandler(t)

	type testCase struct {
		Query         string
		Status        int
		ExpectedTotal int64
		ExpectedIDs   []uint
	}

	testCases := []testCase{
		{Query: "", Status: http.StatusOK, ExpectedTotal: 4},
		{Query: "q=H2J+2L3", Status: http.StatusOK, ExpectedTotal: 1, ExpectedIDs: []uint{fixtures.PersonProperty.ID}},
		{Query: "q=H2J2L3", Status: http.StatusOK, ExpectedTotal: 1, ExpectedIDs: []uint{fixtures.PersonProperty.ID}},
		{Query: "ownerType=organization", Status: http.StatusOK, ExpectedTotal: 1, ExpectedIDs: []uint{fixtures.OrganizationProperty.ID}},
		{Query: "ownerType=robot", Status: http.StatusBadRequest},
		{Query: "page=1&limit=3", Status: http.StatusOK, ExpectedTotal: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.Query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/properties?"+tc.Query, nil)
			res := httptest.NewRecorder()

			handler.ServeHTTP(res, req)

			if e, g := tc.Status, res.Code; e != g {
				t.Fatalf("res.Code: expected %d, got %d", e, g)
			}

			if tc.Status != http.StatusOK {
				return
			}

			var payload harvest.ListPropertiesResponse
			if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedTotal, payload.Total; e != g {
				t.Errorf("payload.Total: expected %d, got %d", e, g)
			}

			if tc.ExpectedIDs == nil {
				return
			}

			if e, g := len(tc.ExpectedIDs), len(payload.Properties); e != g {
				t.Fatalf("len(payload.Properties): expected %d, got %d", e, g)
			}

			for i, id := range tc.ExpectedIDs {
				if e, g := id, payload.Properties[i].ID; e != g {
					t.Errorf("payload.Properties[%d].ID: expected %d, got %d", i, e, g)
				}
			}
		})
	}
}

func TestGetProperty(t *testing.T) {
	handler, fixtures := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/properties/%d", fixtures.PersonProperty.ID), nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	var payload harvest.GetPropertyResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(2), payload.Property.Harvests; e != g {
		t.Errorf("payload.Property.Harvests: expected %d, got %d", e, g)
	}

	if payload.Property.Owner == nil {
		t.Fatalf("payload.Property.Owner should not be nil")
	}

	if e, g := "person", payload.Property.Owner.Type; e != g {
		t.Errorf("payload.Property.Owner.Type: expected '%s', got '%s'", e, g)
	}

	if e, g := "Alice Tremblay", payload.Property.Owner.Name; e != g {
		t.Errorf("payload.Property.Owner.Name: expected '%s', got '%s'", e, g)
	}

	res = httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/properties/9999", nil))

	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected %d, got %d", e, g)
	}
}

func TestListHarvests(t *testing.T) {
	handler, fixtures := newTestHandler(t)

	type testCase struct {
		Query         string
		Status        int
		ExpectedTotal int64
	}

	testCases := []testCase{
		{Query: "", Status: http.StatusOK, ExpectedTotal: 3},
		{Query: fmt.Sprintf("property=%d", fixtures.PersonProperty.ID), Status: http.StatusOK, ExpectedTotal: 2},
		{Query: "status=orphan", Status: http.StatusOK, ExpectedTotal: 1},
		{Query: "status=unknown", Status: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.Query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/harvests?"+tc.Query, nil)
			res := httptest.NewRecorder()

			handler.ServeHTTP(res, req)

			if e, g := tc.Status, res.Code; e != g {
				t.Fatalf("res.Code: expected %d, got %d", e, g)
			}

			if tc.Status != http.StatusOK {
				return
			}

			var payload harvest.ListHarvestsResponse
			if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedTotal, payload.Total; e != g {
				t.Errorf("payload.Total: expected %d, got %d", e, g)
			}
		})
	}
}

func TestGetHarvestParticipants(t *testing.T) {
	handler, fixtures := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/harvests/%d", fixtures.Harvests[0].ID), nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected %d, got %d", e, g)
	}

	var payload harvest.GetHarvestResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// Only the accepted request counts
	if e, g := int64(2), payload.Harvest.Participants; e != g {
		t.Errorf("payload.Harvest.Participants: expected %d, got %d", e, g)
	}
}

func TestMatchAndCORS(t *testing.T) {
	handler, _ := newTestHandler(t)

	if !handler.Match(httptest.NewRequest(http.MethodGet, "/properties", nil)) {
		t.Errorf("GET /properties should match")
	}

	if handler.Match(httptest.NewRequest(http.MethodGet, "/", nil)) {
		t.Errorf("GET / should not match")
	}

	if handler.Match(httptest.NewRequest(http.MethodPost, "/properties", nil)) {
		t.Errorf("POST /properties should not match")
	}

	preflight := httptest.NewRequest(http.MethodOptions, "/properties", nil)
	preflight.Header.Set("Origin", "https://map.example.org")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodGet)

	if !handler.Match(preflight) {
		t.Fatalf("preflight request should match")
	}

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, preflight)

	if e, g := "https://map.example.org", res.Header().Get("Access-Control-Allow-Origin"); e != g {
		t.Errorf("Access-Control-Allow-Origin: expected '%s', got '%s'", e, g)
	}
}
