package routing

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"smartroute/internal/i18n"
)

// Phrase is one source → target substitution.
type Phrase struct {
	From string
	To   string
}

// SwahiliPhrases translates the provider's English maneuver vocabulary.
var SwahiliPhrases = []Phrase{
	{"Continue straight", "Endelea moja kwa moja"},
	{"Continue", "Endelea"},
	{"Turn left", "Geuka kushoto"},
	{"Turn right", "Geuka kulia"},
	{"Slight left", "Geuka kidogo kushoto"},
	{"Slight right", "Geuka kidogo kulia"},
	{"Sharp left", "Geuka kwa nguvu kushoto"},
	{"Sharp right", "Geuka kwa nguvu kulia"},
	{"Keep left", "Shika kushoto"},
	{"Keep right", "Shika kulia"},
	{"Make a U-turn", "Rudi nyuma"},
	{"Head", "Elekea"},
	{"Arrive", "Fika"},
	{"You have arrived", "Umefika"},
	{"Exit", "Toka"},
	{"Enter", "Ingia"},
	{"Merge", "Jiunga"},
	{"roundabout", "mzunguko"},
}

// Translator substitutes whole-word phrases, longest match first and
// case-insensitively. Text no phrase matches passes through unchanged.
type Translator struct {
	phrases []Phrase
}

func NewTranslator(phrases []Phrase) *Translator {
	p := make([]Phrase, 0, len(phrases))
	for _, ph := range phrases {
		if ph.From != "" {
			p = append(p, ph)
		}
	}
	sort.SliceStable(p, func(i, j int) bool { return len(p[i].From) > len(p[j].From) })
	return &Translator{phrases: p}
}

// Translate renders instruction for lang. Provider text is English already.
func (t *Translator) Translate(instruction string, lang i18n.Lang) string {
	if t == nil || lang == i18n.English || instruction == "" {
		return instruction
	}
	var b strings.Builder
	s := instruction
	for i := 0; i < len(s); {
		if atWordStart(s, i) {
			if ph, ok := t.match(s, i); ok {
				b.WriteString(ph.To)
				i += len(ph.From)
				continue
			}
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

func (t *Translator) match(s string, i int) (Phrase, bool) {
	for _, ph := range t.phrases {
		end := i + len(ph.From)
		if end > len(s) || !strings.EqualFold(s[i:end], ph.From) {
			continue
		}
		if end < len(s) {
			r, _ := utf8.DecodeRuneInString(s[end:])
			if isWord(r) {
				continue
			}
		}
		return ph, true
	}
	return Phrase{}, false
}

func atWordStart(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWord(r)
}

func isWord(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }
