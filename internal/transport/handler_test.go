package transport

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-trivia-watcher/internal/hub"
	"go-trivia-watcher/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func dialWebsocket(t *testing.T, serverURL string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial %s: %v", wsURL, err)
	}
	return conn
}

func waitForCount(t *testing.T, h *hub.Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.Count() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("subscription count never reached %d (got %d)", want, h.Count())
}

func TestHandler_Health(t *testing.T) {
	srv := httptest.NewServer(NewHandler(hub.New(4)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestHandler_DeliversSearchQueries(t *testing.T) {
	h := hub.New(4)
	srv := httptest.NewServer(NewHandler(h))
	defer srv.Close()

	conn := dialWebsocket(t, srv.URL)
	defer conn.Close()
	waitForCount(t, h, 1)

	h.Publish(models.Result{
		Question: "столица франции?",
		Answers:  []string{"париж", "лион"},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got []string
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("failed to read message: %v", err)
	}

	want := []string{
		"столица франции?",
		"столица франции? париж",
		"столица франции? лион",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestHandler_FansOutToEveryClient(t *testing.T) {
	h := hub.New(4)
	srv := httptest.NewServer(NewHandler(h))
	defer srv.Close()

	conn1 := dialWebsocket(t, srv.URL)
	defer conn1.Close()
	conn2 := dialWebsocket(t, srv.URL)
	defer conn2.Close()
	waitForCount(t, h, 2)

	h.Publish(models.Result{Question: "q", Answers: []string{"a"}})

	for i, conn := range []*websocket.Conn{conn1, conn2} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got []string
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("client %d read failed: %v", i, err)
		}
		if len(got) != 2 || got[0] != "q" {
			t.Errorf("client %d got %q", i, got)
		}
	}
}

func TestHandler_DisconnectUnregisters(t *testing.T) {
	h := hub.New(4)
	srv := httptest.NewServer(NewHandler(h))
	defer srv.Close()

	conn := dialWebsocket(t, srv.URL)
	waitForCount(t, h, 1)

	conn.Close()
	waitForCount(t, h, 0)
}
