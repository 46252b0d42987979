package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/skylinegeo/quote-service/internal/geo"
	"github.com/skylinegeo/quote-service/internal/model"
	"github.com/skylinegeo/quote-service/internal/service"
)

type Handler struct {
	quotes *service.QuoteService
	log    zerolog.Logger
}

func NewHandler(quotes *service.QuoteService, log zerolog.Logger) *Handler {
	return &Handler{quotes: quotes, log: log}
}

func (h *Handler) Register(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.POST("/quotes", h.submitQuote)
}

type submitQuoteRequest struct {
	Contact  model.Contact   `json:"contact"`
	Project  model.Project   `json:"project"`
	AOI      aoiPayload      `json:"aoi"`
	Service  servicePayload  `json:"service"`
	Metadata metadataPayload `json:"metadata"`
}

type aoiPayload struct {
	Features []json.RawMessage `json:"features"`
	Area     areaPayload       `json:"area"`
	Centroid []float64         `json:"centroid"`
}

type areaPayload struct {
	// Raw so that non-numeric junk normalizes to zero instead of
	// rejecting the submission.
	Acres any `json:"acres"`
}

type servicePayload struct {
	Type         string   `json:"type"`
	Density      string   `json:"density"`
	Accuracy     string   `json:"accuracy"`
	AddOns       []string `json:"addOns"`
	GSD          string   `json:"gsd"`
	Mobilization bool     `json:"mobilization"`
}

type metadataPayload struct {
	RequestID string `json:"requestId"`
}

type submitQuoteResponse struct {
	Status     string    `json:"status"`
	ReceivedAt time.Time `json:"receivedAt"`
	RequestID  string    `json:"requestId,omitempty"`
	Message    string    `json:"message,omitempty"`
}

func (h *Handler) submitQuote(c *gin.Context) {
	var req submitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, submitQuoteResponse{
			Status:  "error",
			Message: "invalid request body",
		})
		return
	}

	result, err := h.quotes.Submit(c.Request.Context(), req.toSubmission())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, submitQuoteResponse{
		Status:     "ok",
		ReceivedAt: result.ReceivedAt,
		RequestID:  result.RequestID,
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, submitQuoteResponse{Status: "error", Message: err.Error()})
	default:
		h.log.Error().Err(err).Msg("submit quote failed")
		c.JSON(http.StatusInternalServerError, submitQuoteResponse{
			Status:  "error",
			Message: "internal error",
		})
	}
}

func (r submitQuoteRequest) toSubmission() model.Submission {
	return model.Submission{
		Contact: r.Contact,
		Project: r.Project,
		AOI: model.AreaOfInterest{
			Features: geo.DecodeFeatures(r.AOI.Features),
			Acres:    coerceFloat(r.AOI.Area.Acres),
			Centroid: parseCentroid(r.AOI.Centroid),
		},
		Service: model.ServiceOptions{
			Type:         model.ParseServiceType(r.Service.Type),
			Density:      r.Service.Density,
			Accuracy:     r.Service.Accuracy,
			AddOns:       r.Service.AddOns,
			GSD:          r.Service.GSD,
			Mobilization: r.Service.Mobilization,
		},
		Metadata: model.Metadata{RequestID: r.Metadata.RequestID},
	}
}

// coerceFloat accepts a number or a numeric string; anything else is 0.
func coerceFloat(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0
		}
		return parsed
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// parseCentroid reads a [lng, lat] pair; anything else means no centroid.
func parseCentroid(pair []float64) *model.Coordinate {
	if len(pair) != 2 {
		return nil
	}
	c := model.Coordinate{Lng: pair[0], Lat: pair[1]}
	if !c.Valid() {
		return nil
	}
	return &c
}
