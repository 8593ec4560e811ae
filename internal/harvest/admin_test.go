package harvest_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	gormAdapter "github.com/bornholm/saskatoon/internal/adapter/gorm"
	"github.com/bornholm/saskatoon/internal/adapter/gorm/testsuite"
	"github.com/bornholm/saskatoon/internal/admin"
	"github.com/bornholm/saskatoon/internal/harvest"
	"github.com/bornholm/saskatoon/internal/member"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func TestOwnerEdit(t *testing.T) {
	site := admin.NewSite(nil, admin.WithPrefix("/admin/"))

	type testCase struct {
		Name     string
		Property *gormAdapter.Property
		Expected string
	}

	testCases := []testCase{
		{
			Name:     "NoOwner",
			Property: &gormAdapter.Property{},
			Expected: "",
		},
		{
			Name: "Person",
			Property: &gormAdapter.Property{
				Owner: &gormAdapter.Actor{
					ID:     3,
					Person: &gormAdapter.Person{ActorID: 3, FirstName: "Alice", FamilyName: "Tremblay"},
				},
			},
			Expected: `<a href="/admin/member/person/3/">Alice Tremblay</a>`,
		},
		{
			Name: "Organization",
			Property: &gormAdapter.Property{
				Owner: &gormAdapter.Actor{
					ID:           7,
					Organization: &gormAdapter.Organization{ActorID: 7, CivilName: "Fruits & Co"},
				},
			},
			Expected: `<a href="/admin/member/organization/7/">Fruits &amp; Co</a>`,
		},
		{
			Name: "Unresolved",
			Property: &gormAdapter.Property{
				Owner: &gormAdapter.Actor{ID: 9},
			},
			Expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			component := harvest.OwnerEdit(site, tc.Property)

			if tc.Expected == "" {
				if component != nil {
					t.Errorf("expected no owner link, got one")
				}
				return
			}

			if component == nil {
				t.Fatalf("expected owner link, got nil")
			}

			var buf bytes.Buffer
			if err := component.Render(context.Background(), &buf); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.Expected, buf.String(); e != g {
				t.Errorf("harvest.OwnerEdit(): expected '%s', got '%s'", e, g)
			}
		})
	}
}

func TestOwnerType(t *testing.T) {
	type testCase struct {
		Name     string
		Owner    *gormAdapter.Actor
		Expected string
	}

	testCases := []testCase{
		{Name: "NoOwner", Owner: nil, Expected: ""},
		{Name: "Person", Owner: &gormAdapter.Actor{ID: 1, Person: &gormAdapter.Person{ActorID: 1}}, Expected: "Person"},
		{Name: "Organization", Owner: &gormAdapter.Actor{ID: 2, Organization: &gormAdapter.Organization{ActorID: 2}}, Expected: "Organization"},
		{Name: "Unresolved", Owner: &gormAdapter.Actor{ID: 3}, Expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			p := &gormAdapter.Property{Owner: tc.Owner}

			if e, g := tc.Expected, harvest.OwnerType(p); e != g {
				t.Errorf("harvest.OwnerType(): expected '%s', got '%s'", e, g)
			}
		})
	}
}

func TestHarvests(t *testing.T) {
	db := testsuite.NewDatabase(t)
	fixtures := testsuite.Seed(t, db)
	ctx := context.Background()

	type testCase struct {
		Property *gormAdapter.Property
		Expected int64
	}

	testCases := []testCase{
		{Property: fixtures.PersonProperty, Expected: 2},
		{Property: fixtures.OrganizationProperty, Expected: 1},
		{Property: fixtures.OwnerlessProperty, Expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.Property.ShortAddress(), func(t *testing.T) {
			count, err := harvest.Harvests(ctx, db, tc.Property)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.Expected, count; e != g {
				t.Errorf("harvest.Harvests(): expected %d, got %d", e, g)
			}
		})
	}
}

func TestRegisterAdmin(t *testing.T) {
	site := admin.NewSite(nil)

	if err := harvest.RegisterAdmin(site); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	models := []string{
		"property", "harvest", "requestforparticipation", "treetype", "equipment",
		"equipmenttype", "harvestyield", "comment", "propertyimage",
	}

	for _, m := range models {
		if !site.IsRegistered(harvest.AppLabel, m) {
			t.Errorf("model '%s' should be registered", m)
		}
	}

	if err := harvest.RegisterAdmin(site); !errors.Is(err, admin.ErrAlreadyRegistered) {
		t.Errorf("registering twice: expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestPropertyChangeList(t *testing.T) {
	db := testsuite.NewDatabase(t)
	fixtures := testsuite.Seed(t, db)

	site := newTestSite(t, db)

	personAddress := fixtures.PersonProperty.ShortAddress()
	organizationAddress := fixtures.OrganizationProperty.ShortAddress()
	ownerlessAddress := fixtures.OwnerlessProperty.ShortAddress()

	type testCase struct {
		Name     string
		Query    url.Values
		Status   int
		Contains []string
		Excludes []string
	}

	testCases := []testCase{
		{
			Name:   "All",
			Query:  url.Values{},
			Status: http.StatusOK,
			Contains: []string{
				personAddress, organizationAddress, ownerlessAddress,
				fmt.Sprintf(`href="/admin/member/person/%d/"`, fixtures.Alice.ActorID),
				fmt.Sprintf(`href="/admin/member/organization/%d/"`, fixtures.Cooperative.ActorID),
			},
		},
		{
			Name:     "SearchPostalCodeWithSpace",
			Query:    url.Values{"q": {"H2J 2L3"}},
			Status:   http.StatusOK,
			Contains: []string{personAddress},
			Excludes: []string{organizationAddress, ownerlessAddress},
		},
		{
			Name:     "SearchPostalCodeWithoutSpace",
			Query:    url.Values{"q": {"H2J2L3"}},
			Status:   http.StatusOK,
			Contains: []string{personAddress},
			Excludes: []string{organizationAddress, ownerlessAddress},
		},
		{
			Name:     "SearchQuotedPostalCode",
			Query:    url.Values{"q": {`"H2J 2L3"`}},
			Status:   http.StatusOK,
			Contains: []string{personAddress},
			Excludes: []string{organizationAddress, ownerlessAddress},
		},
		{
			Name:     "SearchQuotedStoredWithoutSpace",
			Query:    url.Values{"q": {`"H2W 1A1"`}},
			Status:   http.StatusOK,
			Contains: []string{ownerlessAddress},
			Excludes: []string{personAddress, organizationAddress},
		},
		{
			Name:     "SearchStoredWithoutSpace",
			Query:    url.Values{"q": {"H2W 1A1"}},
			Status:   http.StatusOK,
			Contains: []string{ownerlessAddress},
			Excludes: []string{personAddress, organizationAddress},
		},
		{
			Name:     "SearchOwnerFamilyName",
			Query:    url.Values{"q": {"tremblay"}},
			Status:   http.StatusOK,
			Contains: []string{personAddress},
			Excludes: []string{organizationAddress},
		},
		{
			Name:     "FilterOrganizationOwners",
			Query:    url.Values{"owner_type": {"organization"}},
			Status:   http.StatusOK,
			Contains: []string{organizationAddress},
			Excludes: []string{personAddress, ownerlessAddress},
		},
		{
			Name:     "FilterWithoutHarvest",
			Query:    url.Values{"has_harvest": {"0"}},
			Status:   http.StatusOK,
			Contains: []string{ownerlessAddress},
			Excludes: []string{personAddress, organizationAddress},
		},
		{
			Name:   "InvalidOwnerType",
			Query:  url.Values{"owner_type": {"robot"}},
			Status: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/harvest/property/?"+tc.Query.Encode(), nil)
			res := httptest.NewRecorder()

			site.ServeHTTP(res, req)

			if e, g := tc.Status, res.Code; e != g {
				t.Fatalf("res.Code: expected %d, got %d", e, g)
			}

			body := readBody(t, res.Result().Body)

			for _, s := range tc.Contains {
				if !strings.Contains(body, s) {
					t.Errorf("body should contain '%s'", s)
				}
			}

			for _, s := range tc.Excludes {
				if strings.Contains(body, s) {
					t.Errorf("body should not contain '%s'", s)
				}
			}
		})
	}
}

func TestDeleteOwnerReleasesProperties(t *testing.T) {
	type testCase struct {
		Name     string
		Path     func(fixtures *testsuite.Fixtures) string
		Property func(fixtures *testsuite.Fixtures) *gormAdapter.Property
		ActorID  func(fixtures *testsuite.Fixtures) uint
	}

	testCases := []testCase{
		{
			Name:     "Person",
			Path:     func(f *testsuite.Fixtures) string { return fmt.Sprintf("/member/person/%d/delete/", f.Alice.ActorID) },
			Property: func(f *testsuite.Fixtures) *gormAdapter.Property { return f.PersonProperty },
			ActorID:  func(f *testsuite.Fixtures) uint { return f.Alice.ActorID },
		},
		{
			Name:     "Organization",
			Path:     func(f *testsuite.Fixtures) string { return fmt.Sprintf("/member/organization/%d/delete/", f.Cooperative.ActorID) },
			Property: func(f *testsuite.Fixtures) *gormAdapter.Property { return f.OrganizationProperty },
			ActorID:  func(f *testsuite.Fixtures) uint { return f.Cooperative.ActorID },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			db := testsuite.NewDatabase(t)
			fixtures := testsuite.Seed(t, db)

			site := newTestSite(t, db)

			req := httptest.NewRequest(http.MethodPost, tc.Path(fixtures), strings.NewReader(url.Values{}.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			res := httptest.NewRecorder()

			site.ServeHTTP(res, req)

			if e, g := http.StatusSeeOther, res.Code; e != g {
				t.Fatalf("res.Code: expected %d, got %d", e, g)
			}

			err := db.First(&gormAdapter.Actor{}, tc.ActorID(fixtures)).Error
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				t.Errorf("expected gorm.ErrRecordNotFound for the actor, got %v", err)
			}

			var property gormAdapter.Property
			if err := db.Preload("Owner.Person").Preload("Owner.Organization").First(&property, tc.Property(fixtures).ID).Error; err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if property.OwnerID != nil {
				t.Errorf("property.OwnerID: expected nil, got %d", *property.OwnerID)
			}

			if property.Owner != nil {
				t.Errorf("property.Owner: expected nil, got %+v", property.Owner)
			}

			if e, g := "", harvest.OwnerType(&property); e != g {
				t.Errorf("OwnerType: expected '%s', got '%s'", e, g)
			}

			if g := harvest.OwnerEdit(site, &property); g != nil {
				t.Errorf("OwnerEdit: expected nil component")
			}
		})
	}
}

func TestOwnerEditLinkResolves(t *testing.T) {
	db := testsuite.NewDatabase(t)
	fixtures := testsuite.Seed(t, db)

	site := newTestSite(t, db)

	paths := []string{
		fmt.Sprintf("/member/person/%d/", fixtures.Alice.ActorID),
		fmt.Sprintf("/member/organization/%d/", fixtures.Cooperative.ActorID),
	}

	for _, p := range paths {
		req := httptest.NewRequest(http.MethodGet, p, nil)
		res := httptest.NewRecorder()

		site.ServeHTTP(res, req)

		if e, g := http.StatusOK, res.Code; e != g {
			t.Errorf("GET %s: expected status %d, got %d", p, e, g)
		}
	}
}

func newTestSite(t *testing.T, db *gorm.DB) *admin.Site {
	t.Helper()

	site := admin.NewSite(
		func(ctx context.Context) (*gorm.DB, error) {
			return db, nil
		},
		admin.WithPrefix("/admin/"),
	)

	if err := harvest.RegisterAdmin(site); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := member.RegisterAdmin(site); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return site
}

func readBody(t *testing.T, r io.ReadCloser) string {
	t.Helper()

	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return string(data)
}
