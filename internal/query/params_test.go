package query

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	page, limit, offset := Params{}.Normalize()
	if page != 1 {
		t.Fatalf("page should default to 1, got %d", page)
	}
	if limit != DefaultLimit {
		t.Fatalf("limit should default to %d, got %d", DefaultLimit, limit)
	}
	if offset != 0 {
		t.Fatalf("offset should be 0, got %d", offset)
	}
}

func TestNormalizeCorrectsInvalidInput(t *testing.T) {
	cases := []struct {
		name      string
		in        Params
		page      int
		limit     int
		offset    int
	}{
		{"negative page", Params{Page: -3, Limit: 10}, 1, 10, 0},
		{"zero page", Params{Page: 0, Limit: 10}, 1, 10, 0},
		{"zero limit", Params{Page: 2, Limit: 0}, 2, DefaultLimit, DefaultLimit},
		{"negative limit", Params{Page: 2, Limit: -5}, 2, DefaultLimit, DefaultLimit},
		{"limit above cap", Params{Page: 1, Limit: 10_000}, 1, MaxLimit, 0},
		{"valid", Params{Page: 3, Limit: 10}, 3, 10, 20},
	}

	for _, tc := range cases {
		page, limit, offset := tc.in.Normalize()
		if page != tc.page || limit != tc.limit || offset != tc.offset {
			t.Fatalf("%s: got (%d,%d,%d) want (%d,%d,%d)",
				tc.name, page, limit, offset, tc.page, tc.limit, tc.offset)
		}
	}
}

func TestNewPaginationCeil(t *testing.T) {
	cases := []struct {
		records int64
		limit   int
		pages   int64
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{25, 10, 3},
		{199, 100, 2},
	}
	for _, tc := range cases {
		p := NewPagination(tc.records, 1, tc.limit)
		if p.Pages != tc.pages {
			t.Fatalf("records=%d limit=%d: pages got %d want %d",
				tc.records, tc.limit, p.Pages, tc.pages)
		}
		if (p.Pages == 0) != (tc.records == 0) {
			t.Fatalf("records=%d: pages==0 must hold exactly when records==0", tc.records)
		}
	}
}

func TestNewPaginationEmptyResultStillValid(t *testing.T) {
	p := NewPagination(0, 1, 20)
	if p.Current != 1 || p.Limit != 20 || p.Records != 0 || p.Pages != 0 {
		t.Fatalf("unexpected empty-result metadata: %+v", p)
	}
}
