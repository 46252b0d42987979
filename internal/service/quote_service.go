package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/twpayne/go-geom"

	"github.com/skylinegeo/quote-service/internal/eligibility"
	"github.com/skylinegeo/quote-service/internal/model"
	"github.com/skylinegeo/quote-service/internal/pricing"
)

// Notification is the composed result handed to downstream channels after
// a submission has been evaluated.
type Notification struct {
	Submission model.Submission
	Flags      model.EligibilityFlags
	Quote      model.Quote
}

// Notifier delivers a notification to one downstream channel. Delivery is
// best effort and at most once; failures are logged, never retried.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// QuoteService runs a submission through three strict stages: normalize,
// evaluate, dispatch. The service area and depot are immutable process
// configuration; everything else is request local, so no locking is
// needed across concurrent submissions.
type QuoteService struct {
	serviceArea geom.T
	depot       model.Coordinate
	notifiers   []Notifier
	log         zerolog.Logger
}

type SubmitResult struct {
	RequestID  string
	ReceivedAt time.Time
}

func NewQuoteService(serviceArea geom.T, depot model.Coordinate, notifiers []Notifier, log zerolog.Logger) *QuoteService {
	return &QuoteService{
		serviceArea: serviceArea,
		depot:       depot,
		notifiers:   notifiers,
		log:         log,
	}
}

// Submit normalizes and evaluates a submission, launches the notification
// dispatches without waiting on them, and acknowledges the caller. Input
// anomalies degrade to safe defaults; only an unexpected fault surfaces,
// and then only as ErrInternal with no detail attached.
func (s *QuoteService) Submit(ctx context.Context, sub model.Submission) (result *SubmitResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("submission processing failed")
			result, err = nil, ErrInternal
		}
	}()

	sub = s.normalize(sub)

	flags := eligibility.Evaluate(sub.AOI.Acres, sub.AOI.Features, s.serviceArea)
	quote := pricing.ComputeQuote(sub.Service, sub.AOI.Acres, sub.AOI.Centroid, s.depot)

	s.log.Info().
		Str("request_id", sub.Metadata.RequestID).
		Str("service", string(sub.Service.Type)).
		Float64("acres", sub.AOI.Acres).
		Bool("manual", quote.Manual).
		Bool("auto_quote_eligible", flags.AutoQuoteEligible).
		Msg("submission evaluated")

	s.dispatch(ctx, Notification{Submission: sub, Flags: flags, Quote: quote})

	return &SubmitResult{
		RequestID:  sub.Metadata.RequestID,
		ReceivedAt: time.Now().UTC(),
	}, nil
}

// normalize clamps the acreage, derives the remaining area units, defaults
// the service type and stamps request metadata. The request identifier is
// assigned once and stays stable for the submission's lifetime.
func (s *QuoteService) normalize(sub model.Submission) model.Submission {
	acres := sub.AOI.Acres
	if math.IsNaN(acres) || math.IsInf(acres, 0) || acres < 0 {
		acres = 0
	}
	sub.AOI.Acres = acres
	sub.AOI.Hectares = acres * model.HectaresPerAcre
	sub.AOI.SqKm = acres * model.SqKmPerAcre

	if sub.AOI.Centroid != nil && !sub.AOI.Centroid.Valid() {
		sub.AOI.Centroid = nil
	}

	if sub.Service.Type == "" {
		sub.Service.Type = model.ServiceLidar
	}
	if sub.Service.Type == model.ServicePhotogrammetry {
		if sub.Service.GSD == "" {
			sub.Service.GSD = pricing.DefaultGSDTier
		}
	} else {
		if sub.Service.Density == "" {
			sub.Service.Density = pricing.DefaultDensityTier
		}
		if sub.Service.Accuracy == "" {
			sub.Service.Accuracy = pricing.DefaultAccuracyTier
		}
	}

	if strings.TrimSpace(sub.Metadata.RequestID) == "" {
		sub.Metadata.RequestID = newRequestID()
	}
	if sub.Metadata.SubmittedAt.IsZero() {
		sub.Metadata.SubmittedAt = time.Now().UTC()
	}
	return sub
}

// dispatch hands the notification to each channel on its own goroutine.
// Neither channel blocks the other or the caller's acknowledgment, and a
// panicking notifier is contained here.
func (s *QuoteService) dispatch(ctx context.Context, n Notification) {
	bg := context.WithoutCancel(ctx)
	for _, notifier := range s.notifiers {
		notifier := notifier
		go func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error().
						Interface("panic", r).
						Str("request_id", n.Submission.Metadata.RequestID).
						Msg("notifier panicked")
				}
			}()
			if err := notifier.Notify(bg, n); err != nil {
				s.log.Error().
					Err(err).
					Str("request_id", n.Submission.Metadata.RequestID).
					Msg("notification delivery failed")
			}
		}()
	}
}

// newRequestID builds an identifier from a high-resolution timestamp plus
// a random suffix, unique per call with overwhelming probability.
func newRequestID() string {
	return fmt.Sprintf("Q-%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}
