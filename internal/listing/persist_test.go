package listing

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func sampleListings() []Listing {
	return []Listing{
		{
			Neighborhood:            "Riverside Gardens",
			Price:                   NewPrice(650000),
			Bedrooms:                3,
			Bathrooms:               2,
			HouseSize:               "2400 sqft",
			Description:             "A craftsman home with a wide porch.",
			NeighborhoodDescription: "Tree-lined streets near the river trail.",
		},
		{
			Neighborhood:            "Skyline Towers",
			Price:                   NewPrice(1800000),
			Bedrooms:                4,
			Bathrooms:               3,
			HouseSize:               "3100 sqft",
			Description:             "Penthouse with skyline views.",
			NeighborhoodDescription: "Dense, walkable downtown.",
		},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	original := sampleListings()
	path := filepath.Join(t.TempDir(), "listings.json")

	require.NoError(t, SaveFile(path, original))

	loaded, report, err := LoadFile(path, newTestLogger())
	require.NoError(t, err)
	assert.Equal(t, LoadReport{Loaded: 2, Skipped: 0}, report)
	assert.Equal(t, original, loaded)
}

func TestSave_FieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, sampleListings()[:1]))

	out := buf.String()
	for _, key := range []string{
		`"neighborhood"`, `"price": "$650,000"`, `"bedrooms": 3`, `"bathrooms": 2`,
		`"house_size"`, `"description"`, `"neighborhood_description"`,
	} {
		assert.Contains(t, out, key)
	}
}

func TestSave_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestLoad_SkipsInvalidRecords(t *testing.T) {
	input := `[
	  {"neighborhood":"Pine Valley","price":"$410,000","bedrooms":2,"bathrooms":1,"house_size":"1100 sqft","description":"d","neighborhood_description":"n"},
	  {"neighborhood":"Broken","price":"$410,000"},
	  {"neighborhood":"Bad Price","price":"n/a","bedrooms":2,"bathrooms":1,"house_size":"1100 sqft","description":"d","neighborhood_description":"n"},
	  {"neighborhood":"Crystal Bay","price":"$2,300,000","bedrooms":5,"bathrooms":4,"house_size":"4200 sqft","description":"d","neighborhood_description":"n"}
	]`

	listings, report, err := Load(strings.NewReader(input), newTestLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Loaded)
	assert.Equal(t, 2, report.Skipped)
	require.Len(t, listings, 2)
	assert.Equal(t, "Pine Valley", listings[0].Neighborhood)
	assert.Equal(t, "Crystal Bay", listings[1].Neighborhood)
}

func TestLoad_NotAnArray(t *testing.T) {
	_, _, err := Load(strings.NewReader(`{"neighborhood":"x"}`), newTestLogger())
	require.Error(t, err)
}
