package httpserver

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pkazanov/catalog-api/internal/domain"
)

const propertyParamPrefix = "property_"

// ParseCatalogQuery buckets the query string into list filters, int ranges,
// a name search and a sort key:
//
//	property_<id>       -> exact-match filter, multi-valued
//	property_<id>_from  -> inclusive lower bound
//	property_<id>_to    -> inclusive upper bound
//	name                -> case-insensitive substring on product name
//	sort                -> "name" or "uid", anything else ignored
//
// Unknown keys, non-integer bounds, and ids or filter values that are not
// valid uuids are all ignored. Dropping non-uuid entries here keeps typo'd
// parameters from reaching the uuid-typed columns, where they would fail
// the cast instead of matching nothing.
func ParseCatalogQuery(values url.Values) domain.CatalogQuery {
	q := domain.CatalogQuery{
		Filters: map[string][]string{},
		Ranges:  map[string]domain.IntRange{},
	}
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		switch {
		case key == "name":
			q.Name = vals[0]
		case key == "sort":
			if vals[0] == "name" || vals[0] == "uid" {
				q.Sort = vals[0]
			}
		case strings.HasPrefix(key, propertyParamPrefix):
			rest := strings.TrimPrefix(key, propertyParamPrefix)
			switch {
			case strings.HasSuffix(rest, "_from"):
				uid, ok := parsePropertyUID(strings.TrimSuffix(rest, "_from"))
				if !ok {
					continue
				}
				if n, err := strconv.Atoi(vals[0]); err == nil {
					rng := q.Ranges[uid]
					rng.From = &n
					q.Ranges[uid] = rng
				}
			case strings.HasSuffix(rest, "_to"):
				uid, ok := parsePropertyUID(strings.TrimSuffix(rest, "_to"))
				if !ok {
					continue
				}
				if n, err := strconv.Atoi(vals[0]); err == nil {
					rng := q.Ranges[uid]
					rng.To = &n
					q.Ranges[uid] = rng
				}
			default:
				uid, ok := parsePropertyUID(rest)
				if !ok {
					continue
				}
				for _, v := range vals {
					if valueUID, err := uuid.Parse(v); err == nil {
						q.Filters[uid] = append(q.Filters[uid], valueUID.String())
					}
				}
			}
		}
	}
	return q
}

// parsePropertyUID canonicalizes the <id> portion of a property_ key.
func parsePropertyUID(s string) (string, bool) {
	uid, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return uid.String(), true
}
