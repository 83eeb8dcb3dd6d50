package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartroute/internal/i18n"
	"smartroute/internal/model"
	"smartroute/internal/places"
	"smartroute/internal/store"
)

// PlansHandler handles POST /v1/plans
func (s *Server) PlansHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.RouteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid route request", validationDetail(err), r.URL.Path)
		return
	}
	lang := i18n.Negotiate(req.Language, r.Header.Get("Accept-Language"), s.Engine.DefaultLanguage())
	req.Language = string(lang)

	routes := s.Engine.PlanRoutes(r.Context(), req)
	plan := model.Plan{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Language:  string(lang),
		Request:   req,
		Routes:    routes,
		Found:     len(routes) > 0,
	}
	if err := s.Store.SavePlan(r.Context(), plan); err != nil {
		s.Log.Error("save plan failed", zap.String("planId", plan.ID), zap.Error(err))
		writeProblem(w, http.StatusInternalServerError, "Save plan failed", err.Error(), r.URL.Path)
		return
	}
	s.Broker.Publish(plan.ID, SSEEvent{Type: EventPlanReady, Data: map[string]any{
		"planId": plan.ID,
		"found":  plan.Found,
		"routes": len(plan.Routes),
		"ts":     plan.CreatedAt.Format(time.RFC3339),
	}})
	w.Header().Set("Content-Language", string(lang))
	w.Header().Set("Location", "/v1/plans/"+plan.ID)
	writeJSON(w, http.StatusOK, plan)
}

// PlanByIDHandler handles /v1/plans/{id}, /v1/plans/{id}/select and /v1/plans/{id}/events/stream
func (s *Server) PlanByIDHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	rest := strings.TrimPrefix(path, "/v1/plans/")
	if rest == path || rest == "" {
		writeProblem(w, http.StatusNotFound, "Not Found", "missing id", path)
		return
	}
	parts := strings.Split(strings.TrimSuffix(rest, "/"), "/")
	id := parts[0]
	switch {
	case len(parts) == 1:
		s.getPlan(w, r, id)
	case len(parts) == 2 && parts[1] == "select":
		s.selectRoute(w, r, id)
	case len(parts) == 3 && parts[1] == "events" && parts[2] == "stream":
		s.streamPlanEvents(w, r, id)
	default:
		writeProblem(w, http.StatusNotFound, "Not Found", "", path)
	}
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p, err := s.Store.GetPlan(r.Context(), id)
	if err != nil {
		s.storeProblem(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) selectRoute(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.SelectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid selection", validationDetail(err), r.URL.Path)
		return
	}
	p, err := s.Store.SelectRoute(r.Context(), id, req.RouteID)
	if err != nil {
		s.storeProblem(w, r, err)
		return
	}
	route, _ := p.Route(req.RouteID)
	s.Broker.Publish(id, SSEEvent{Type: EventRouteSelected, Data: map[string]any{
		"planId":       id,
		"routeId":      route.ID,
		"summary":      route.Summary,
		"trafficLevel": route.TrafficLevel,
		"ts":           s.now().UTC().Format(time.RFC3339),
	}})
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) storeProblem(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Plan not found", "the plan is unknown or has expired", r.URL.Path)
	case errors.Is(err, store.ErrUnknownRoute):
		writeProblem(w, http.StatusUnprocessableEntity, "Unknown route", err.Error(), r.URL.Path)
	default:
		s.Log.Error("plan store failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeProblem(w, http.StatusInternalServerError, "Plan store failed", err.Error(), r.URL.Path)
	}
}

var heartbeatEvery = 15 * time.Second

func (s *Server) streamPlanEvents(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, err := s.Store.GetPlan(r.Context(), id); err != nil {
		s.storeProblem(w, r, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeProblem(w, http.StatusInternalServerError, "Streaming unsupported", "", r.URL.Path)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.Broker.Subscribe(id)
	defer s.Broker.Unsubscribe(id, ch)

	heartbeat := func() {
		fmt.Fprintf(w, "event: heartbeat\n")
		fmt.Fprintf(w, "data: {\"planId\":%q,\"ts\":%q}\n\n", id, s.now().UTC().Format(time.RFC3339))
		flusher.Flush()
	}
	heartbeat()
	ticker := time.NewTicker(heartbeatEvery)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case evt, ok := <-ch:
			if !ok {
				return
			}
			b, _ := json.Marshal(evt.Data)
			fmt.Fprintf(w, "event: %s\n", evt.Type)
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		case <-ticker.C:
			heartbeat()
		}
	}
}

// PlacesHandler handles GET /v1/places?category=&q=&lang=
func (s *Server) PlacesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	lang := s.requestLang(r)
	var found []places.Place
	if term := q.Get("q"); term != "" {
		found = s.Catalog.Search(term, lang)
		if c := places.Category(q.Get("category")); c != "" {
			kept := found[:0]
			for _, p := range found {
				if p.Category == c {
					kept = append(kept, p)
				}
			}
			found = kept
		}
	} else {
		found = s.Catalog.Places(places.Category(q.Get("category")))
	}
	items := make([]places.View, 0, len(found))
	for _, p := range found {
		items = append(items, p.View(lang))
	}
	w.Header().Set("Content-Language", string(lang))
	writeJSON(w, http.StatusOK, map[string]any{"language": lang, "items": items})
}

// TrafficLevelsHandler handles GET /v1/traffic-levels
func (s *Server) TrafficLevelsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	lang := s.requestLang(r)
	w.Header().Set("Content-Language", string(lang))
	writeJSON(w, http.StatusOK, map[string]any{"language": lang, "items": i18n.LevelLabels(lang)})
}

func (s *Server) requestLang(r *http.Request) i18n.Lang {
	return i18n.Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"), s.Engine.DefaultLanguage())
}

// Health
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	// Check Redis connectivity when plans live there
	type pinger interface{ Ping(ctx context.Context) error }
	if p, ok := s.Store.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			writeProblem(w, http.StatusServiceUnavailable, "Not Ready", err.Error(), r.URL.Path)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "providerConfigured": s.Config.Provider.HasToken()})
}
