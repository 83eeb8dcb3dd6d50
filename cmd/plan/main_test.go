package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartroute/internal/i18n"
	"smartroute/internal/model"
)

func TestParseLatLng(t *testing.T) {
	loc, err := parseLatLng(" -6.7924, 39.2083 ")
	require.NoError(t, err)
	assert.InDelta(t, -6.7924, loc.Lat, 1e-9)
	assert.InDelta(t, 39.2083, loc.Lng, 1e-9)

	for _, bad := range []string{"", "-6.79", "a,b", "-6.79,x", "91,0", "0,181"} {
		_, err := parseLatLng(bad)
		assert.Error(t, err, bad)
	}
}

var sampleRoutes = []model.Route{{
	ID:                "driving-traffic-0",
	Profile:           "driving-traffic",
	Summary:           "Fastest Route - No Traffic",
	Distance:          "6.0 km",
	Duration:          "15 min",
	DurationInTraffic: "15 min",
	TrafficLevel:      model.TrafficLight,
	SmartScore:        95,
	Recommendation:    "Best choice. Light traffic.",
}}

func TestPrintTable(t *testing.T) {
	tests := []struct {
		name   string
		routes []model.Route
		lang   i18n.Lang
		want   []string
	}{
		{"no routes sw", nil, i18n.Swahili, []string{"Hakuna njia iliyopatikana.\n"}},
		{"no routes en", []model.Route{}, i18n.English, []string{"No routes found.\n"}},
		{"one route en", sampleRoutes, i18n.English, []string{"SUMMARY", "IN TRAFFIC", "driving-traffic-0", "Fastest Route - No Traffic", "Light Traffic", "95", "1. Best choice. Light traffic.\n"}},
		{"one route sw", sampleRoutes, i18n.Swahili, []string{"Msongamano Mdogo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, printTable(&buf, tt.routes, tt.lang))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			if len(tt.routes) == 0 {
				assert.Equal(t, tt.want[0], buf.String())
			}
		})
	}
}

func TestWriteRoutesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRoutes(&buf, sampleRoutes, i18n.English, true))
	assert.True(t, strings.HasPrefix(buf.String(), "[\n  {"), buf.String())

	var got []model.Route
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, sampleRoutes[0].ID, got[0].ID)
	assert.Equal(t, model.TrafficLight, got[0].TrafficLevel)
	assert.Equal(t, 95, got[0].SmartScore)

	buf.Reset()
	require.NoError(t, writeRoutes(&buf, nil, i18n.English, true))
	assert.Equal(t, "null\n", buf.String())

	buf.Reset()
	require.NoError(t, writeRoutes(&buf, nil, i18n.English, false))
	assert.Equal(t, "No routes found.\n", buf.String())
}
