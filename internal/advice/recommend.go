// Package advice writes the human-facing text attached to a route: the
// recommendation body, the summary title and the road names they mention.
package advice

import (
	"math"
	"strconv"
	"strings"

	"smartroute/internal/i18n"
	"smartroute/internal/model"
	"smartroute/internal/traffic"
)

// phrase pools keyed by traffic level; withRoad variants mention {road}.
type tier struct {
	withRoad []i18n.Text
	noRoad   []i18n.Text
}

var tiers = map[model.TrafficLevel]tier{
	model.TrafficLight: {
		withRoad: []i18n.Text{
			{SW: "Njia bora! Pita {road} ({km}km) - barabara wazi, hakuna msongamano. Utafika kwa wakati.",
				EN: "Best route! Take {road} ({km}km) - clear roads, no congestion. You will arrive on time."},
			{SW: "Safari rahisi kupitia {road} ({km}km). Barabara ni wazi, endelea haraka!",
				EN: "Easy trip via {road} ({km}km). The road is clear, keep going!"},
		},
		noRoad: []i18n.Text{
			{SW: "Njia nzuri sana! Barabara za mitaani ({km}km) - hakuna msongamano mkubwa. Muda wa safari {min} dakika.",
				EN: "Great route! Local streets ({km}km) - no major congestion. Trip time {min} minutes."},
			{SW: "Barabara za mitaani ni wazi ({km}km). Utafika kwa wakati, takriban dakika {min}.",
				EN: "Local streets are clear ({km}km). You will arrive on time, in about {min} minutes."},
		},
	},
	model.TrafficModerate: {
		withRoad: []i18n.Text{
			{SW: "Pita {road} ({km}km) - msongamano wa kati. Ongeza dakika 5-10 kwenye safari yako.",
				EN: "Take {road} ({km}km) - moderate congestion. Add 5-10 minutes to your trip."},
			{SW: "Njia nzuri lakini kuna msongamano kidogo kwenye {road} ({km}km). Subiri dakika chache zaidi.",
				EN: "Good route but there is some congestion on {road} ({km}km). Allow a few extra minutes."},
		},
		noRoad: []i18n.Text{
			{SW: "Msongamano wa kati kwenye barabara za mitaani ({km}km). Subiri dakika 5-10 zaidi kuliko kawaida.",
				EN: "Moderate congestion on local streets ({km}km). Expect 5-10 minutes more than usual."},
			{SW: "Hali ya kawaida ya msongamano kwenye barabara za mitaani ({km}km). Subiri dakika chache.",
				EN: "Usual congestion on local streets ({km}km). Allow a few extra minutes."},
		},
	},
	model.TrafficHeavy: {
		withRoad: []i18n.Text{
			{SW: "⚠️ Msongamano mkubwa kwenye {road} ({km}km)! Fikiria njia nyingine au subiri hadi msongamano upungue.",
				EN: "⚠️ Heavy congestion on {road} ({km}km)! Consider another route or wait until traffic eases."},
			{SW: "⚠️ Foleni nyingi kwenye {road} ({km}km)! Subiri au chagua njia nyingine.",
				EN: "⚠️ Long queues on {road} ({km}km)! Wait or choose another route."},
		},
		noRoad: []i18n.Text{
			{SW: "🚨 Msongamano mkubwa kwenye barabara za mitaani ({km}km)! Subiri au chagua njia nyingine.",
				EN: "🚨 Heavy congestion on local streets ({km}km)! Wait or choose another route."},
			{SW: "🚨 Hali ngumu ya msongamano sasa hivi ({km}km). Fikiria njia nyingine au subiri.",
				EN: "🚨 Traffic is very bad right now ({km}km). Consider another route or wait."},
		},
	},
}

var routeNames = []i18n.Text{
	{SW: "Njia ya Haraka", EN: "Fastest Route"},
	{SW: "Njia Mbadala", EN: "Alternate Route"},
	{SW: "Njia ya Tatu", EN: "Third Route"},
}

var descriptors = map[model.TrafficLevel]i18n.Text{
	model.TrafficLight:    {SW: "Hakuna Foleni", EN: "No Traffic"},
	model.TrafficModerate: {SW: "Foleni Kidogo", EN: "Some Traffic"},
	model.TrafficHeavy:    {SW: "Foleni Nyingi", EN: "Heavy Traffic"},
}

// Generator produces recommendations and summaries. A nil Chooser means FirstChooser.
type Generator struct {
	Chooser Chooser
}

func NewGenerator(c Chooser) *Generator {
	return &Generator{Chooser: c}
}

func (g *Generator) pick(pool []i18n.Text) i18n.Text {
	var c Chooser = FirstChooser{}
	if g != nil && g.Chooser != nil {
		c = g.Chooser
	}
	i := c.Choose(len(pool))
	if i < 0 || i >= len(pool) {
		i = 0
	}
	return pool[i]
}

// Recommend builds the recommendation body for one route. roads should come
// from ExtractRoadNames; only the first is mentioned.
func (g *Generator) Recommend(a traffic.Analysis, roads []string, distanceMeters, durationSeconds float64, lang i18n.Lang) string {
	t, ok := tiers[a.Level]
	if !ok {
		t = tiers[model.TrafficModerate]
	}
	pool := t.noRoad
	road := ""
	if len(roads) > 0 {
		pool = t.withRoad
		road = roads[0]
	}
	return strings.NewReplacer(
		"{road}", road,
		"{km}", strconv.Itoa(int(math.Round(distanceMeters/1000))),
		"{min}", strconv.Itoa(int(math.Round(durationSeconds/60))),
	).Replace(g.pick(pool).In(lang))
}

// Summary is the compact route title, e.g. "Njia ya Haraka - Hakuna Foleni".
func (g *Generator) Summary(level model.TrafficLevel, index int, lang i18n.Lang) string {
	var name string
	if index >= 0 && index < len(routeNames) {
		name = routeNames[index].In(lang)
	} else {
		name = i18n.Text{SW: "Njia ", EN: "Route "}.In(lang) + strconv.Itoa(index+1)
	}
	d, ok := descriptors[level]
	if !ok {
		return name
	}
	return name + " - " + d.In(lang)
}

// WithArea appends local-area context to a recommendation.
func WithArea(rec, area, landmark string, lang i18n.Lang) string {
	if area != "" {
		rec += " (" + area + ")"
	}
	if landmark != "" {
		rec += " " + i18n.Text{SW: "Utapita karibu na ", EN: "You will pass near "}.In(lang) + landmark + "."
	}
	return rec
}
