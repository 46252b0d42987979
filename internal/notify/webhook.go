package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/skylinegeo/quote-service/internal/model"
	"github.com/skylinegeo/quote-service/internal/service"
)

// Webhook posts each evaluated submission as a flat JSON object to a
// configured endpoint, typically a spreadsheet ingestion script. Delivery
// is best effort: one attempt, no retry.
type Webhook struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

func NewWebhook(url string, log zerolog.Logger) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

func (w *Webhook) Notify(ctx context.Context, n service.Notification) error {
	if w.url == "" {
		return nil
	}

	payload, err := json.Marshal(flatten(n))
	if err != nil {
		return fmt.Errorf("webhook: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook: endpoint returned status %d", resp.StatusCode)
	}

	w.log.Debug().
		Str("request_id", n.Submission.Metadata.RequestID).
		Msg("webhook delivered")
	return nil
}

// flatten spreads the notification tuple into a single-level object so
// the receiving sheet can map keys to columns directly.
func flatten(n service.Notification) map[string]any {
	sub := n.Submission
	row := map[string]any{
		"requestId":          sub.Metadata.RequestID,
		"submittedAt":        sub.Metadata.SubmittedAt.Format(time.RFC3339),
		"contactName":        sub.Contact.Name,
		"contactEmail":       sub.Contact.Email,
		"contactPhone":       sub.Contact.Phone,
		"contactCompany":     sub.Contact.Company,
		"projectName":        sub.Project.Name,
		"projectTimeline":    sub.Project.Timeline,
		"serviceType":        string(sub.Service.Type),
		"mobilization":       sub.Service.Mobilization,
		"acres":              sub.AOI.Acres,
		"hectares":           sub.AOI.Hectares,
		"sqKm":               sub.AOI.SqKm,
		"areaOver300Acres":   n.Flags.AreaOver300Acres,
		"inServiceArea":      n.Flags.InServiceArea,
		"autoQuoteEligible":  n.Flags.AutoQuoteEligible,
		"manual":             n.Quote.Manual,
		"price":              n.Quote.Price,
		"base":               n.Quote.Breakdown.Base,
		"addOnsTotal":        n.Quote.Breakdown.AddOnsTotal,
		"mobilizationMiles":  n.Quote.Breakdown.MobilizationMiles,
		"mobilizationCharge": n.Quote.Breakdown.MobilizationCharge,
	}
	if sub.AOI.Centroid != nil {
		row["centroidLng"] = sub.AOI.Centroid.Lng
		row["centroidLat"] = sub.AOI.Centroid.Lat
	}
	switch sub.Service.Type {
	case model.ServicePhotogrammetry:
		row["gsdFactor"] = n.Quote.Breakdown.GSDFactor
	default:
		row["densityFactor"] = n.Quote.Breakdown.DensityFactor
		row["accuracyFactor"] = n.Quote.Breakdown.AccuracyFactor
	}
	return row
}
