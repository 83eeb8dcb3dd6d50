package advice

import (
	"regexp"
	"strings"

	"smartroute/internal/i18n"
)

// MaxRoads caps the notable road names kept per route.
const MaxRoads = 3

type landmarkRoad struct {
	key    string
	prefix string
}

// Known major roads get a descriptive Swahili prefix around the original name.
var landmarkRoads = []landmarkRoad{
	{key: "nyerere", prefix: "Barabara ya Nyerere"},
	{key: "uhuru", prefix: "Mtaa wa Uhuru"},
	{key: "kariakoo", prefix: "Eneo la Kariakoo"},
}

var roadWords = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)\broad\b`), "Barabara"},
	{regexp.MustCompile(`(?i)\bstreet\b`), "Mtaa"},
	{regexp.MustCompile(`(?i)\bavenue\b`), "Njia"},
}

// StyleRoadName applies toponym styling for the display language.
func StyleRoadName(name string, lang i18n.Lang) string {
	if lang == i18n.English {
		return name
	}
	lower := strings.ToLower(name)
	for _, lr := range landmarkRoads {
		if strings.Contains(lower, lr.key) {
			return lr.prefix + " (" + name + ")"
		}
	}
	out := name
	for _, w := range roadWords {
		out = w.re.ReplaceAllString(out, w.repl)
	}
	return out
}

// ExtractRoadNames keeps the first MaxRoads distinct, named roads in order.
func ExtractRoadNames(names []string, lang i18n.Lang) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, MaxRoads)
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || strings.Contains(strings.ToLower(n), "unnamed") {
			continue
		}
		styled := StyleRoadName(n, lang)
		if _, ok := seen[styled]; ok {
			continue
		}
		seen[styled] = struct{}{}
		out = append(out, styled)
		if len(out) == MaxRoads {
			break
		}
	}
	return out
}
