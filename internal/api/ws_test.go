package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartroute/internal/directions"
)

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWSPlanEvents(t *testing.T) {
	s := newTestServer(t, stubProvider{routes: []directions.Route{sampleRoute(600, 5000, "low")}})
	ts := httptest.NewServer(s.Routes())
	defer ts.Close()
	p := createPlan(t, s.Routes())

	conn := dialWS(t, ts)
	require.NoError(t, conn.WriteJSON(wsMessage{Type: "connection_init"}))
	assert.Equal(t, "connection_ack", readWS(t, conn).Type)

	require.NoError(t, conn.WriteJSON(wsMessage{Type: "ping"}))
	assert.Equal(t, "pong", readWS(t, conn).Type)

	payload, _ := json.Marshal(subscribePayload{PlanID: p.ID})
	require.NoError(t, conn.WriteJSON(wsMessage{Type: "subscribe", ID: "1", Payload: payload}))
	// a ping round trip guarantees the subscription is registered
	require.NoError(t, conn.WriteJSON(wsMessage{Type: "ping"}))
	assert.Equal(t, "pong", readWS(t, conn).Type)

	resp, err := http.Post(ts.URL+"/v1/plans/"+p.ID+"/select", "application/json", strings.NewReader(`{"routeId":"driving-traffic-0"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	msg := readWS(t, conn)
	assert.Equal(t, "next", msg.Type)
	assert.Equal(t, "1", msg.ID)
	var body struct {
		Data struct {
			PlanEvents SSEEvent `json:"planEvents"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Payload, &body))
	assert.Equal(t, EventRouteSelected, body.Data.PlanEvents.Type)
	assert.Equal(t, "driving-traffic-0", body.Data.PlanEvents.Data["routeId"])

	require.NoError(t, conn.WriteJSON(wsMessage{Type: "complete", ID: "1"}))
	msg = readWS(t, conn)
	assert.Equal(t, "complete", msg.Type)
	assert.Equal(t, "1", msg.ID)
}

func TestWSSubscribeErrors(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.Routes())
	defer ts.Close()
	conn := dialWS(t, ts)

	// subscribing before connection_init is refused
	require.NoError(t, conn.WriteJSON(wsMessage{Type: "subscribe", ID: "a", Payload: json.RawMessage(`{"planId":"x"}`)}))
	msg := readWS(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, string(msg.Payload), "connection_init")
	assert.Equal(t, "complete", readWS(t, conn).Type)

	require.NoError(t, conn.WriteJSON(wsMessage{Type: "connection_init"}))
	assert.Equal(t, "connection_ack", readWS(t, conn).Type)

	require.NoError(t, conn.WriteJSON(wsMessage{Type: "subscribe", ID: "b", Payload: json.RawMessage(`{}`)}))
	msg = readWS(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, string(msg.Payload), "planId required")
	assert.Equal(t, "complete", readWS(t, conn).Type)

	require.NoError(t, conn.WriteJSON(wsMessage{Type: "subscribe", ID: "c", Payload: json.RawMessage(`{"planId":"missing"}`)}))
	msg = readWS(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "c", msg.ID)
	assert.Contains(t, string(msg.Payload), "plan not found")
}
