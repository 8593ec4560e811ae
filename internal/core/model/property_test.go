package model

import "testing"

func TestNormalizePostalCode(t *testing.T) {
	type testCase struct {
		PostalCode string
		Expected   string
	}

	testCases := []testCase{
		{PostalCode: "H2X 1Y4", Expected: "H2X1Y4"},
		{PostalCode: "H2X1Y4", Expected: "H2X1Y4"},
		{PostalCode: " H2X  1Y4 ", Expected: "H2X1Y4"},
		{PostalCode: "", Expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.PostalCode, func(t *testing.T) {
			if e, g := tc.Expected, NormalizePostalCode(tc.PostalCode); e != g {
				t.Errorf("NormalizePostalCode(%q): expected %q, got %q", tc.PostalCode, e, g)
			}
		})
	}
}

func TestOwnerType(t *testing.T) {
	if e, g := OwnerTypePerson, ResolveOwnerType(true, false); e != g {
		t.Errorf("expected %q, got %q", e, g)
	}

	if e, g := OwnerTypeOrganization, ResolveOwnerType(false, true); e != g {
		t.Errorf("expected %q, got %q", e, g)
	}

	if e, g := OwnerTypeNone, ResolveOwnerType(false, false); e != g {
		t.Errorf("expected %q, got %q", e, g)
	}

	if e, g := "Person", OwnerTypePerson.Title(); e != g {
		t.Errorf("expected %q, got %q", e, g)
	}

	if e, g := "Organization", OwnerTypeOrganization.Title(); e != g {
		t.Errorf("expected %q, got %q", e, g)
	}

	if e, g := "", OwnerTypeNone.Title(); e != g {
		t.Errorf("expected %q, got %q", e, g)
	}
}
