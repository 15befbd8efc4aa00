package ws_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/deeparex/Food-monitoring-System/internal/adapters/broadcast"
	"github.com/deeparex/Food-monitoring-System/internal/adapters/http/ws"
	"github.com/deeparex/Food-monitoring-System/internal/domain/model"
	"github.com/deeparex/Food-monitoring-System/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func dialAlerts(server *httptest.Server) (*websocket.Conn, error) {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/alerts"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if resp != nil {
		defer resp.Body.Close()
	}
	return conn, err
}

func TestHandler_StreamsAlerts(t *testing.T) {
	Convey("Given a websocket endpoint over a broadcaster", t, func() {
		b := broadcast.New()
		defer b.Close()
		handler := ws.NewHandler(b, logger.Named("ws-test"))

		mux := http.NewServeMux()
		mux.HandleFunc("/ws/alerts", handler.HandleAlerts)
		server := httptest.NewServer(mux)
		defer server.Close()

		Convey("When a client connects and an event is published", func() {
			conn, err := dialAlerts(server)
			So(err, ShouldBeNil)
			defer conn.Close()

			// Connection registration happens inside the handler goroutines.
			waitForSubscribers(b, 1)

			b.Publish(context.Background(), model.AlertEvent{
				TraceID:    "trace-1",
				RecordName: "olive oil",
				Alerts: []model.Alert{
					{Kind: model.AlertExpired, Message: "freshness expiry date has passed"},
				},
				EmittedAt: time.Now(),
			})

			Convey("Then the event arrives as JSON", func() {
				_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
				var ev model.AlertEvent
				So(conn.ReadJSON(&ev), ShouldBeNil)
				So(ev.TraceID, ShouldEqual, "trace-1")
				So(ev.Alerts, ShouldHaveLength, 1)
				So(ev.Alerts[0].Kind, ShouldEqual, model.AlertExpired)
			})
		})

		Convey("When the client disconnects", func() {
			conn, err := dialAlerts(server)
			So(err, ShouldBeNil)
			waitForSubscribers(b, 1)

			conn.Close()

			Convey("Then its subscription is cancelled", func() {
				waitForSubscribers(b, 0)
				So(b.Count(), ShouldEqual, 0)
			})
		})

		Convey("When a plain HTTP request hits the endpoint", func() {
			resp, err := http.Get(server.URL + "/ws/alerts")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the upgrade is refused without a subscription", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(b.Count(), ShouldEqual, 0)
			})
		})
	})
}

func TestHandler_BroadcasterClose(t *testing.T) {
	Convey("Given a connected client", t, func() {
		b := broadcast.New()
		handler := ws.NewHandler(b, logger.Named("ws-test"))

		mux := http.NewServeMux()
		mux.HandleFunc("/ws/alerts", handler.HandleAlerts)
		server := httptest.NewServer(mux)
		defer server.Close()

		conn, err := dialAlerts(server)
		So(err, ShouldBeNil)
		defer conn.Close()
		waitForSubscribers(b, 1)

		Convey("When the broadcaster shuts down", func() {
			So(b.Close(), ShouldBeNil)

			Convey("Then the peer receives a close frame", func() {
				_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
				_, _, err := conn.ReadMessage()
				So(err, ShouldNotBeNil)
				So(websocket.IsCloseError(err, websocket.CloseNoStatusReceived), ShouldBeTrue)
			})
		})
	})
}

// waitForSubscribers polls until the broadcaster reaches n subscribers or a
// deadline passes; registration races the dial returning.
func waitForSubscribers(b *broadcast.Broadcaster, n int) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if b.Count() == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
}
