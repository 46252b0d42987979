package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/skylinegeo/quote-service/internal/model"
	"github.com/skylinegeo/quote-service/internal/service"
)

type slowNotifier struct {
	delay    time.Duration
	received chan service.Notification
}

func (s *slowNotifier) Notify(_ context.Context, n service.Notification) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.received <- n
	return nil
}

func testRouter(notifiers ...service.Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	serviceArea := geom.NewPolygonFlat(geom.XY, []float64{
		-90, 30, -80, 30, -80, 40, -90, 40, -90, 30,
	}, []int{10})
	depot := model.Coordinate{Lng: -86.7816, Lat: 36.1627}
	svc := service.NewQuoteService(serviceArea, depot, notifiers, zerolog.Nop())
	return NewRouter(NewHandler(svc, zerolog.Nop()), "test")
}

const validBody = `{
	"contact": {"name": "Dana Oak", "email": "dana@example.com"},
	"project": {"name": "North Ridge"},
	"aoi": {
		"features": [{"type":"Polygon","coordinates":[[[-86.8,36.1],[-86.7,36.1],[-86.7,36.2],[-86.8,36.2],[-86.8,36.1]]]}],
		"area": {"acres": 20},
		"centroid": [-86.75, 36.15]
	},
	"service": {"type": "lidar", "addOns": ["dtm"]}
}`

func TestSubmitQuote(t *testing.T) {
	notifier := &slowNotifier{received: make(chan service.Notification, 1)}
	router := testRouter(notifier)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["receivedAt"])
	assert.NotEmpty(t, resp["requestId"])

	select {
	case n := <-notifier.received:
		assert.False(t, n.Quote.Manual)
		assert.InDelta(t, 2450, *n.Quote.Price, 1e-9)
		require.NotNil(t, n.Flags.InServiceArea)
		assert.True(t, *n.Flags.InServiceArea)
	case <-time.After(2 * time.Second):
		t.Fatal("notification never dispatched")
	}
}

func TestSubmitQuoteInvalidBody(t *testing.T) {
	router := testRouter()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp["status"])
}

func TestSubmitQuoteLenientFields(t *testing.T) {
	notifier := &slowNotifier{received: make(chan service.Notification, 1)}
	router := testRouter(notifier)

	body := `{
		"aoi": {"area": {"acres": "not-a-number"}, "centroid": [1]},
		"service": {"type": "hovercraft"}
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	n := <-notifier.received
	assert.Equal(t, 0.0, n.Submission.AOI.Acres)
	assert.Nil(t, n.Submission.AOI.Centroid)
	assert.Equal(t, model.ServiceLidar, n.Submission.Service.Type)
	assert.Nil(t, n.Flags.InServiceArea)
}

func TestSubmitQuoteAcknowledgesBeforeNotification(t *testing.T) {
	notifier := &slowNotifier{delay: 500 * time.Millisecond, received: make(chan service.Notification, 1)}
	router := testRouter(notifier)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	router.ServeHTTP(rec, req)
	elapsed := time.Since(start)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Less(t, elapsed, 250*time.Millisecond)

	select {
	case <-notifier.received:
	case <-time.After(2 * time.Second):
		t.Fatal("notification never dispatched")
	}
}

func TestHealthz(t *testing.T) {
	router := testRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected float64
	}{
		{"float", 12.5, 12.5},
		{"numeric string", "42", 42},
		{"junk string", "acres", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"object", map[string]any{"a": 1}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, coerceFloat(tc.raw))
		})
	}
}
