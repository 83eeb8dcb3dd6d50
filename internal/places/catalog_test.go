package places

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartroute/internal/i18n"
	"smartroute/internal/model"
)

func TestAreaFor(t *testing.T) {
	c := Default()
	kariakoo := model.Location{Lat: -6.8161, Lng: 39.2694}
	cityCenter := model.Location{Lat: -6.7924, Lng: 39.2083}
	mbeya := model.Location{Lat: -8.9094, Lng: 33.4606}
	arusha := model.Location{Lat: -3.3869, Lng: 36.6830}

	a, ok := c.AreaFor(cityCenter, kariakoo)
	require.True(t, ok)
	assert.Equal(t, "Dar es Salaam", a.Name)

	a, ok = c.AreaFor(mbeya, mbeya)
	require.True(t, ok)
	assert.Equal(t, "Mbeya", a.Name)

	_, ok = c.AreaFor(cityCenter, mbeya)
	assert.False(t, ok, "endpoints in different areas")
	_, ok = c.AreaFor(arusha, arusha)
	assert.False(t, ok)

	// edges are inclusive
	_, ok = c.AreaFor(model.Location{Lat: -6.7, Lng: 39.1}, model.Location{Lat: -6.9, Lng: 39.4})
	assert.True(t, ok)

	var nilCatalog *Catalog
	_, ok = nilCatalog.AreaFor(cityCenter, kariakoo)
	assert.False(t, ok)
}

func TestNearestLandmark(t *testing.T) {
	dar := DefaultAreas()[0]

	lm, ok := dar.NearestLandmark(nil)
	require.True(t, ok)
	assert.Equal(t, "Kariakoo Market", lm.Name)

	nearUbungo := orb.LineString{{39.2000, -6.8500}, {39.2580, -6.7830}}
	lm, ok = dar.NearestLandmark(nearUbungo)
	require.True(t, ok)
	assert.Equal(t, "Ubungo Bus Terminal", lm.Name)

	_, ok = Area{Name: "empty"}.NearestLandmark(nearUbungo)
	assert.False(t, ok)
}

func TestPlacesByCategory(t *testing.T) {
	c := Default()
	assert.Len(t, c.Places(""), 16)
	markets := c.Places(Market)
	require.Len(t, markets, 3)
	assert.Equal(t, "Soko la Kariakoo", markets[0].Name.In(i18n.Swahili))
	assert.Empty(t, c.Places("airport"))
}

func TestSearch(t *testing.T) {
	c := Default()

	got := c.Search("jiji", i18n.Swahili)
	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Equal(t, City, p.Category)
	}

	// the Swahili name matches even when browsing in English
	got = c.Search("soko", i18n.English)
	require.Len(t, got, 2)
	assert.Equal(t, "Kariakoo Market", got[0].Name.EN)

	// prefix hits rank ahead of substring hits
	got = c.Search("mwenge", i18n.English)
	require.Len(t, got, 1)
	got = c.Search("market", i18n.English)
	require.GreaterOrEqual(t, len(got), 3)
	assert.Equal(t, "Kariakoo Market", got[0].Name.EN)

	assert.Len(t, c.Search("  ", i18n.English), 16)
	assert.Empty(t, c.Search("nairobi", i18n.English))
}

func TestViewIsLocalised(t *testing.T) {
	p := DefaultPlaces()[1]
	v := p.View(i18n.English)
	assert.Equal(t, "Kariakoo Market", v.Name)
	assert.Equal(t, "Markets", v.CategoryLabel)
	assert.Equal(t, "Masoko", p.View(i18n.Swahili).CategoryLabel)
	assert.Equal(t, model.Location{Lat: -6.8161, Lng: 39.2694, Address: "Soko la Kariakoo"}, p.Location(i18n.Swahili))
}
