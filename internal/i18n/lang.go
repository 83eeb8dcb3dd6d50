// Package i18n holds the display languages the planner speaks and the
// negotiation between an explicit choice and Accept-Language.
package i18n

import (
	"strings"

	"golang.org/x/text/language"

	"smartroute/internal/model"
)

type Lang string

const (
	Swahili Lang = "sw"
	English Lang = "en"
)

var (
	supported = []language.Tag{language.Swahili, language.English}
	matcher   = language.NewMatcher(supported)
)

// Parse returns the language for a code, or ok=false when unsupported.
func Parse(code string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(code))) {
	case Swahili:
		return Swahili, true
	case English:
		return English, true
	}
	return "", false
}

// Negotiate picks an explicit code first, then the best Accept-Language
// match, then fallback.
func Negotiate(explicit, acceptLanguage string, fallback Lang) Lang {
	if l, ok := Parse(explicit); ok {
		return l
	}
	if strings.TrimSpace(acceptLanguage) != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return Lang(supported[idx].String())
			}
		}
	}
	if fallback == "" {
		return Swahili
	}
	return fallback
}

// Text is a string available in both display languages.
type Text struct {
	SW string `json:"sw" yaml:"sw"`
	EN string `json:"en" yaml:"en"`
}

// In returns the text for l, falling back to Swahili.
func (t Text) In(l Lang) string {
	if l == English && t.EN != "" {
		return t.EN
	}
	return t.SW
}

var levelLabels = map[model.TrafficLevel]Text{
	model.TrafficLight:    {SW: "Msongamano Mdogo", EN: "Light Traffic"},
	model.TrafficModerate: {SW: "Msongamano wa Kati", EN: "Moderate Traffic"},
	model.TrafficHeavy:    {SW: "Msongamano Mkubwa", EN: "Heavy Traffic"},
}

// LevelLabel is the legend label for a traffic level.
func LevelLabel(level model.TrafficLevel, l Lang) string {
	if t, ok := levelLabels[level]; ok {
		return t.In(l)
	}
	return string(level)
}

// LevelLabels lists every level with its label, light first.
func LevelLabels(l Lang) []map[string]string {
	out := make([]map[string]string, 0, len(levelLabels))
	for _, lv := range []model.TrafficLevel{model.TrafficLight, model.TrafficModerate, model.TrafficHeavy} {
		out = append(out, map[string]string{"level": string(lv), "label": LevelLabel(lv, l)})
	}
	return out
}
