package ols

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

// scheduleInformation is sent JSON-encoded inside a JSON string field.
type scheduleInformation struct {
	ScheduleDate            string `json:"ScheduleDate"`
	Duration                int    `json:"Duration"`
	Resource                string `json:"Resource"`
	Provider                string `json:"Provider"`
	SiteID                  int    `json:"SiteId"`
	ProviderID              int    `json:"ProviderId"`
	ResourceID              string `json:"ResourceId"`
	ServiceID               int    `json:"ServiceId"`
	ServiceName             string `json:"ServiceName"`
	ServiceUniqueIdentifier string `json:"ServiceUniqueIdentifier"`
}

// Both values are strings on the wire, including the number.
type stageRequest struct {
	ScheduleInformation string `json:"scheduleInformation"`
	StartTime           string `json:"startTime"`
}

func newStageRequest(slot reservation.Slot) (stageRequest, error) {
	info := scheduleInformation{
		ScheduleDate:            reservation.FormatDate(slot.Date),
		Duration:                slot.DurationMinutes(),
		Resource:                fmt.Sprintf(resourceNameFormat, slot.Court),
		Provider:                "",
		SiteID:                  siteID,
		ProviderID:              0,
		ResourceID:              strconv.Itoa(slot.ResourceID()),
		ServiceID:               serviceID,
		ServiceName:             serviceName,
		ServiceUniqueIdentifier: serviceUniqueIdentifier,
	}
	b, err := json.Marshal(info)
	if err != nil {
		return stageRequest{}, err
	}
	return stageRequest{
		ScheduleInformation: string(b),
		StartTime:           strconv.Itoa(slot.StartMinute()),
	}, nil
}

// Stage puts a tentative hold on slot for sess. The hold is not a booking
// until Confirm succeeds, and nothing releases it if Confirm fails.
func (c *Client) Stage(ctx context.Context, sess *Session, slot reservation.Slot) error {
	sr, err := newStageRequest(slot)
	if err != nil {
		return err
	}
	b, err := json.Marshal(sr)
	if err != nil {
		return err
	}
	_, _, err = c.do(ctx, c.httpClient(sess), http.MethodPost, stagePath, contentTypeJSON, b)
	return err
}
