//go:build ignore

// Package main runs a demo WebSocket client for plan events.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

type wsMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://localhost:%s", port)

	// Plan Dar es Salaam City Center -> Kariakoo
	body := []byte(`{"origin":{"lat":-6.7924,"lng":39.2083},"destination":{"lat":-6.8161,"lng":39.2694},"optimizeForTraffic":true}`)
	resp, err := http.Post(base+"/v1/plans", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()
	var plan struct {
		ID     string `json:"id"`
		Routes []struct {
			ID             string `json:"id"`
			Summary        string `json:"summary"`
			Recommendation string `json:"recommendation"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		log.Fatal(err)
	}
	log.Printf("Plan ID: %s (%d routes)", plan.ID, len(plan.Routes))
	for _, r := range plan.Routes {
		log.Printf("  %s  %s  %s", r.ID, r.Summary, r.Recommendation)
	}
	if len(plan.Routes) == 0 {
		log.Fatal("no routes returned; is MAPBOX_ACCESS_TOKEN set on the server?")
	}

	u := url.URL{Scheme: "ws", Host: "localhost:" + port, Path: "/v1/ws"}
	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer func() { _ = c.Close() }()

	if err := c.WriteJSON(wsMessage{Type: "connection_init"}); err != nil {
		log.Fatal(err)
	}
	pl, _ := json.Marshal(map[string]string{"planId": plan.ID})
	if err := c.WriteJSON(wsMessage{Type: "subscribe", ID: "1", Payload: pl}); err != nil {
		log.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var m wsMessage
			if err := c.ReadJSON(&m); err != nil {
				log.Printf("read: %v", err)
				return
			}
			log.Printf("WS <- %s: %s", m.Type, string(m.Payload))
		}
	}()

	// Select the top route to trigger a route.selected event
	time.Sleep(500 * time.Millisecond)
	sel := fmt.Sprintf(`{"routeId":%q}`, plan.Routes[0].ID)
	selResp, err := http.Post(fmt.Sprintf("%s/v1/plans/%s/select", base, plan.ID), "application/json", bytes.NewReader([]byte(sel)))
	if err == nil {
		_ = selResp.Body.Close()
	}

	select {
	case <-time.After(2 * time.Second):
	case <-done:
	}
}
