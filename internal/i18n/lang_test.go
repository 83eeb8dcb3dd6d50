package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartroute/internal/model"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		accept   string
		fallback Lang
		want     Lang
	}{
		{"explicit wins", "en", "sw-TZ", Swahili, English},
		{"explicit is case-insensitive", " SW ", "", English, Swahili},
		{"accept-language english", "", "en-GB,en;q=0.9", Swahili, English},
		{"accept-language swahili region", "", "sw-KE", English, Swahili},
		{"unsupported accept falls back", "", "fr-FR", English, English},
		{"unsupported explicit ignored", "fr", "", Swahili, Swahili},
		{"empty fallback is swahili", "", "", "", Swahili},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.explicit, tt.accept, tt.fallback))
		})
	}
}

func TestLevelLabels(t *testing.T) {
	assert.Equal(t, "Msongamano Mkubwa", LevelLabel(model.TrafficHeavy, Swahili))
	assert.Equal(t, "Light Traffic", LevelLabel(model.TrafficLight, English))
	assert.Equal(t, "gridlock", LevelLabel("gridlock", English))

	labels := LevelLabels(English)
	if assert.Len(t, labels, 3) {
		assert.Equal(t, "light", labels[0]["level"])
		assert.Equal(t, "Heavy Traffic", labels[2]["label"])
	}
}

func TestTextFallsBackToSwahili(t *testing.T) {
	assert.Equal(t, "Njia", Text{SW: "Njia"}.In(English))
	assert.Equal(t, "Route", Text{SW: "Njia", EN: "Route"}.In(English))
}
