package routing

import (
	"math"
	"sort"

	"smartroute/internal/model"
)

// Rank sorts routes in place, stably. With optimizeForTraffic the order is
// traffic level ascending, smart score descending, then in-traffic time;
// otherwise in-traffic time alone.
func Rank(routes []model.Route, optimizeForTraffic bool) {
	if !optimizeForTraffic {
		sort.SliceStable(routes, func(i, j int) bool {
			return routes[i].DurationInTrafficSeconds < routes[j].DurationInTrafficSeconds
		})
		return
	}
	sort.SliceStable(routes, func(i, j int) bool {
		a, b := routes[i], routes[j]
		if a.TrafficLevel.Rank() != b.TrafficLevel.Rank() {
			return a.TrafficLevel.Rank() < b.TrafficLevel.Rank()
		}
		if a.SmartScore != b.SmartScore {
			return a.SmartScore > b.SmartScore
		}
		return a.DurationInTrafficSeconds < b.DurationInTrafficSeconds
	})
}

type routeKey struct {
	distance int
	duration int
	vertices int
}

// keyOf rounds distance to 10 m and duration to the minute so the same road
// returned by two profiles collapses to one key.
func keyOf(r model.Route) routeKey {
	return routeKey{
		distance: int(math.Round(r.DistanceMeters / 10)),
		duration: int(math.Round(float64(r.DurationSeconds) / 60)),
		vertices: r.Vertices,
	}
}

// Dedupe drops later routes that look identical to an earlier one. Run it
// after Rank so the better-ranked copy survives.
func Dedupe(routes []model.Route) []model.Route {
	seen := make(map[routeKey]struct{}, len(routes))
	out := routes[:0:0]
	for _, r := range routes {
		k := keyOf(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
