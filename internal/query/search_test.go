package query

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitTerms(t *testing.T) {
	type testCase struct {
		Query    string
		Expected []string
	}

	testCases := []testCase{
		{Query: "", Expected: []string{}},
		{Query: "H2X 1Y4", Expected: []string{"H2X", "1Y4"}},
		{Query: "  H2X1Y4  ", Expected: []string{"H2X1Y4"}},
		{Query: `"rue Saint-Denis" 4200`, Expected: []string{"rue Saint-Denis", "4200"}},
		{Query: `'de la' Roche`, Expected: []string{"de la", "Roche"}},
	}

	for _, tc := range testCases {
		t.Run(tc.Query, func(t *testing.T) {
			if e, g := tc.Expected, SplitTerms(tc.Query); !reflect.DeepEqual(e, g) {
				t.Errorf("SplitTerms(%q): expected %#v, got %#v", tc.Query, e, g)
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	if e, g := `100\%\_a\\b`, escapeLike(`100%_a\b`); e != g {
		t.Errorf("expected %q, got %q", e, g)
	}
}

func TestSearchFieldPattern(t *testing.T) {
	stripSpaces := func(s string) string { return strings.ReplaceAll(s, " ", "") }

	type testCase struct {
		Field    SearchField
		Term     string
		Expected string
	}

	testCases := []testCase{
		{Field: SearchField{Expr: "street"}, Term: "Saint-Denis", Expected: "%saint-denis%"},
		{Field: SearchField{Expr: "street"}, Term: "50%_off", Expected: `%50\%\_off%`},
		{Field: SearchField{Expr: "postal_code", Normalize: stripSpaces}, Term: "H2X 1Y4", Expected: "%h2x1y4%"},
	}

	for _, tc := range testCases {
		if e, g := tc.Expected, tc.Field.pattern(tc.Term); e != g {
			t.Errorf("pattern(%q): expected '%s', got '%s'", tc.Term, e, g)
		}
	}
}
