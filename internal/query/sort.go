package query

import "strings"

// DefaultSort orders newest rows first.
const DefaultSort = "created_at DESC"

// ResolveSort maps a client sort token like "title_asc" or "created_at_desc"
// onto an ORDER BY expression. The field (token minus its direction suffix)
// must be in the allow-list; unknown fields, missing suffixes, and empty
// tokens all fall back to DefaultSort.
func ResolveSort(token string, allowed ...string) string {
	token = strings.ToLower(strings.TrimSpace(token))

	var field, dir string
	switch {
	case strings.HasSuffix(token, "_asc"):
		field, dir = strings.TrimSuffix(token, "_asc"), "ASC"
	case strings.HasSuffix(token, "_desc"):
		field, dir = strings.TrimSuffix(token, "_desc"), "DESC"
	default:
		return DefaultSort
	}

	for _, a := range allowed {
		if field == a {
			return field + " " + dir
		}
	}
	return DefaultSort
}
