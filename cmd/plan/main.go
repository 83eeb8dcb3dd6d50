// Command plan runs the route engine once and prints the ranked routes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"smartroute/internal/api"
	"smartroute/internal/config"
	"smartroute/internal/i18n"
	"smartroute/internal/logger"
	"smartroute/internal/model"
	"smartroute/internal/places"
)

func main() {
	var (
		from       = flag.String("from", "", "origin as lat,lng")
		to         = flag.String("to", "", "destination as lat,lng")
		avoidHwy   = flag.Bool("avoid-highways", false, "exclude motorways")
		avoidTolls = flag.Bool("avoid-tolls", false, "exclude toll roads")
		optimize   = flag.Bool("optimize", true, "rank by traffic level and smart score")
		lang       = flag.String("lang", "", "display language: sw or en (default from config)")
		configPath = flag.String("config", config.DefaultPath, "path to the YAML config file")
		asJSON     = flag.Bool("json", false, "print routes as JSON")
		timeout    = flag.Duration("timeout", 30*time.Second, "overall deadline")
	)
	flag.Parse()

	if err := run(*from, *to, *avoidHwy, *avoidTolls, *optimize, *lang, *configPath, *asJSON, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "plan:", err)
		os.Exit(1)
	}
}

func run(from, to string, avoidHwy, avoidTolls, optimize bool, lang, configPath string, asJSON bool, timeout time.Duration) error {
	origin, err := parseLatLng(from)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	dest, err := parseLatLng(to)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}
	if lang != "" {
		if _, ok := i18n.Parse(lang); !ok {
			return fmt.Errorf("-lang %q: want sw or en", lang)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env, "plan")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if !cfg.Provider.HasToken() {
		log.Warn("MAPBOX_ACCESS_TOKEN is not set; no routes will be found")
	}

	engine := api.NewEngine(cfg, places.Default(), log)

	req := model.RouteRequest{
		Origin:             &origin,
		Destination:        &dest,
		AvoidHighways:      avoidHwy,
		AvoidTolls:         avoidTolls,
		OptimizeForTraffic: optimize,
		Language:           lang,
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	routes := engine.PlanRoutes(ctx, req)
	log.Debug("plan finished", zap.Int("routes", len(routes)))

	return writeRoutes(os.Stdout, routes, engine.Language(req), asJSON)
}

func writeRoutes(w io.Writer, routes []model.Route, lang i18n.Lang, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(routes)
	}
	return printTable(w, routes, lang)
}

func parseLatLng(s string) (model.Location, error) {
	lat, lng, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return model.Location{}, fmt.Errorf("%q: want lat,lng", s)
	}
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("latitude: %w", err)
	}
	ln, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("longitude: %w", err)
	}
	if la < -90 || la > 90 || ln < -180 || ln > 180 {
		return model.Location{}, fmt.Errorf("%q: out of range", s)
	}
	return model.Location{Lat: la, Lng: ln}, nil
}

func printTable(w io.Writer, routes []model.Route, lang i18n.Lang) error {
	if len(routes) == 0 {
		_, err := fmt.Fprintln(w, i18n.Text{SW: "Hakuna njia iliyopatikana.", EN: "No routes found."}.In(lang))
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tSUMMARY\tDISTANCE\tDURATION\tIN TRAFFIC\tLEVEL\tSCORE")
	for i, r := range routes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			i+1, r.ID, r.Summary, r.Distance, r.Duration, r.DurationInTraffic,
			i18n.LevelLabel(r.TrafficLevel, lang), r.SmartScore)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	for i, r := range routes {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, r.Recommendation); err != nil {
			return err
		}
	}
	return nil
}
