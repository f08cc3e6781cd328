package query

import "testing"

func TestResolveSortAllowed(t *testing.T) {
	got := ResolveSort("title_asc", "created_at", "updated_at", "title")
	if got != "title ASC" {
		t.Fatalf("got %q want %q", got, "title ASC")
	}
	got = ResolveSort("created_at_desc", "created_at", "title")
	if got != "created_at DESC" {
		t.Fatalf("got %q want %q", got, "created_at DESC")
	}
}

func TestResolveSortFallsBackToDefault(t *testing.T) {
	cases := []string{
		"",
		"created_at",         // missing direction suffix
		"password_desc",      // not in allow-list
		"title_sideways",     // bogus suffix
		"; DROP TABLE users", // hostile token
	}
	for _, token := range cases {
		if got := ResolveSort(token, "created_at", "title"); got != DefaultSort {
			t.Fatalf("token %q: got %q want default %q", token, got, DefaultSort)
		}
	}
}

func TestResolveSortNormalizesCase(t *testing.T) {
	if got := ResolveSort("  Title_ASC ", "title"); got != "title ASC" {
		t.Fatalf("got %q want %q", got, "title ASC")
	}
}
