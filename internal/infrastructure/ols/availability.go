package ols

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

type availabilityRequest struct {
	SiteID       string   `json:"siteId"`
	ResourceIDs  []string `json:"resourceIds"`
	SelectedDate string   `json:"selectedDate"`
}

type availabilityResponse struct {
	D struct {
		Value []struct {
			ID           int `json:"Id"`
			Availability []struct {
				TimeID      int  `json:"TimeId"`
				IsAvailable bool `json:"IsAvailable"`
			} `json:"Availability"`
		} `json:"Value"`
	} `json:"d"`
}

// Availability fetches the per-minute feed for every court on day. It needs no
// session.
func (c *Client) Availability(ctx context.Context, day time.Time) ([]reservation.CourtAvailability, error) {
	ids := reservation.ResourceIDs()
	body := availabilityRequest{
		SiteID:       strconv.Itoa(siteID),
		ResourceIDs:  make([]string, 0, len(ids)),
		SelectedDate: reservation.FormatDate(day),
	}
	for _, id := range ids {
		body.ResourceIDs = append(body.ResourceIDs, strconv.Itoa(id))
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	_, resp, err := c.do(ctx, c.httpClient(nil), http.MethodPost, availabilityPath, contentTypeJSON, b)
	if err != nil {
		return nil, err
	}

	var parsed availabilityResponse
	if err := json.Unmarshal(resp, &parsed); err != nil {
		return nil, fmt.Errorf("%w: parse availability: %v", reservation.ErrTransport, err)
	}

	out := make([]reservation.CourtAvailability, 0, len(parsed.D.Value))
	for _, r := range parsed.D.Value {
		ca := reservation.CourtAvailability{
			ID:      r.ID,
			Minutes: make([]reservation.MinuteAvailability, 0, len(r.Availability)),
		}
		for _, m := range r.Availability {
			ca.Minutes = append(ca.Minutes, reservation.MinuteAvailability{Minute: m.TimeID, Available: m.IsAvailable})
		}
		out = append(out, ca)
	}
	c.logger.Debug("fetched availability", zap.String("date", reservation.FormatDate(day)), zap.Int("resources", len(out)))
	return out, nil
}
