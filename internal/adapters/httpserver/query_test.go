package httpserver

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	colorUID = "9f4adadc-b3f1-4fbb-b00c-6c3a70c2714a"
	sizeUID  = "1dd3a0c6-2f88-44ac-9a86-d5b7c0e2b5af"
	redUID   = "5b53a9f0-6f2f-4a0a-95b5-1f0d9c7f3f6e"
	blueUID  = "c0a8016e-4e0f-4a21-bb07-2f4de8a07d93"
)

func TestParseCatalogQuery(t *testing.T) {
	values, err := url.ParseQuery(
		"property_" + colorUID + "=" + redUID +
			"&property_" + colorUID + "=" + blueUID +
			"&property_" + sizeUID + "_from=5" +
			"&property_" + sizeUID + "_to=10" +
			"&name=shoe&sort=name")
	require.NoError(t, err)

	q := ParseCatalogQuery(values)

	require.Equal(t, map[string][]string{colorUID: {redUID, blueUID}}, q.Filters)
	require.Len(t, q.Ranges, 1)
	rng := q.Ranges[sizeUID]
	require.NotNil(t, rng.From)
	require.NotNil(t, rng.To)
	require.Equal(t, 5, *rng.From)
	require.Equal(t, 10, *rng.To)
	require.Equal(t, "shoe", q.Name)
	require.Equal(t, "name", q.Sort)
}

func TestParseCatalogQueryOpenEndedRange(t *testing.T) {
	values, _ := url.ParseQuery("property_" + sizeUID + "_from=5")
	q := ParseCatalogQuery(values)

	rng := q.Ranges[sizeUID]
	require.NotNil(t, rng.From)
	require.Equal(t, 5, *rng.From)
	require.Nil(t, rng.To)
	require.Empty(t, q.Filters)
}

func TestParseCatalogQueryIgnoresUnknownKeys(t *testing.T) {
	values, _ := url.ParseQuery("page=2&page_size=5&foo=bar&property_=x")
	q := ParseCatalogQuery(values)

	require.Empty(t, q.Filters)
	require.Empty(t, q.Ranges)
	require.Empty(t, q.Name)
}

func TestParseCatalogQueryIgnoresInvalidSort(t *testing.T) {
	values, _ := url.ParseQuery("sort=price")
	q := ParseCatalogQuery(values)
	require.Empty(t, q.Sort)
}

func TestParseCatalogQueryIgnoresNonIntegerBounds(t *testing.T) {
	values, _ := url.ParseQuery("property_" + sizeUID + "_from=abc&property_" + sizeUID + "_to=10")
	q := ParseCatalogQuery(values)

	rng := q.Ranges[sizeUID]
	require.Nil(t, rng.From)
	require.NotNil(t, rng.To)
	require.Equal(t, 10, *rng.To)
}

func TestParseCatalogQueryMixedKeysSameProperty(t *testing.T) {
	values, _ := url.ParseQuery(
		"property_" + sizeUID + "=" + redUID +
			"&property_" + sizeUID + "_from=1" +
			"&property_" + sizeUID + "_to=3")
	q := ParseCatalogQuery(values)

	require.Equal(t, []string{redUID}, q.Filters[sizeUID])
	rng := q.Ranges[sizeUID]
	require.Equal(t, 1, *rng.From)
	require.Equal(t, 3, *rng.To)
}

// Non-uuid ids and values never reach the uuid-typed columns; they are
// dropped like any other unknown key.
func TestParseCatalogQueryDropsNonUUIDIdentifiers(t *testing.T) {
	values, _ := url.ParseQuery(
		"property_notauuid=x" +
			"&property_shoes_from=5" +
			"&property_shoes_to=10" +
			"&property_" + colorUID + "=red")
	q := ParseCatalogQuery(values)

	require.Empty(t, q.Filters, "non-uuid ids and values must not produce filters")
	require.Empty(t, q.Ranges)
}

func TestParseCatalogQueryKeepsOnlyUUIDValues(t *testing.T) {
	values, _ := url.ParseQuery(
		"property_" + colorUID + "=red" +
			"&property_" + colorUID + "=" + blueUID)
	q := ParseCatalogQuery(values)

	require.Equal(t, map[string][]string{colorUID: {blueUID}}, q.Filters)
}

func TestParseCatalogQueryCanonicalizesUUIDs(t *testing.T) {
	upper := "9F4ADADC-B3F1-4FBB-B00C-6C3A70C2714A"
	values, _ := url.ParseQuery("property_" + upper + "=" + redUID)
	q := ParseCatalogQuery(values)

	require.Contains(t, q.Filters, colorUID)
}
