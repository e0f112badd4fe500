package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rlucioni/courtbot/internal/dispatch"
	"github.com/rlucioni/courtbot/internal/domain/reservation"
	"github.com/rlucioni/courtbot/internal/messages"
	"github.com/rlucioni/courtbot/internal/slack"
)

var noon = time.Date(2026, time.October, 17, 12, 0, 0, 0, reservation.Venue)

type queue struct {
	mu    sync.Mutex
	tasks []dispatch.Task
	err   error
}

func (q *queue) Dispatch(_ context.Context, t dispatch.Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.tasks = append(q.tasks, t)
	return nil
}

func newServer(t *testing.T) (*Server, *queue) {
	q := &queue{}
	return &Server{
		Verifier:        slack.Verifier{Token: "tok", TeamID: "T1"},
		Dispatcher:      q,
		BookingChannels: []string{"CGEN", "CSQUASH"},
		Now:             func() time.Time { return noon },
		Logger:          zaptest.NewLogger(t),
	}, q
}

func post(t *testing.T, h http.Handler, path string, form url.Values) (int, string) {
	t.Helper()
	base := url.Values{
		"token":        {"tok"},
		"team_id":      {"T1"},
		"channel_id":   {"CGEN"},
		"user_name":    {"rlucioni"},
		"response_url": {"https://hooks.slack.com/commands/1"},
	}
	for k, v := range form {
		base[k] = v
	}
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(base.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		return w.Code, ""
	}
	var body struct {
		ResponseType string `json:"response_type"`
		Text         string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "in_channel", body.ResponseType)
	return w.Code, body.Text
}

func TestHealthz(t *testing.T) {
	s, _ := newServer(t)
	w := httptest.NewRecorder()
	s.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoutes(t *testing.T) {
	s, _ := newServer(t)
	h := s.Routes()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/look", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cancel", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLookDispatches(t *testing.T) {
	s, q := newServer(t)
	code, text := post(t, s.Routes(), "/look", url.Values{"text": {"tomorrow"}, "command": {"/look"}})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, messages.Looking, text)
	require.Len(t, q.tasks, 1)
	assert.Equal(t, dispatch.CommandLook, q.tasks[0].Command)
	assert.Equal(t, "tomorrow", q.tasks[0].Text)
	assert.Equal(t, "https://hooks.slack.com/commands/1", q.tasks[0].ResponseURL)
}

func TestOverlongTextAnsweredImmediately(t *testing.T) {
	s, q := newServer(t)
	h := s.Routes()
	long := strings.Repeat("#4 @ 8 pm ", 60)

	_, text := post(t, h, "/book", url.Values{"text": {long}})
	assert.Equal(t, messages.Usage, text)
	_, text = post(t, h, "/look", url.Values{"text": {long}})
	assert.Equal(t, messages.Failure, text)
	assert.Empty(t, q.tasks)
}

func TestRejectsUnverified(t *testing.T) {
	s, q := newServer(t)
	h := s.Routes()

	code, _ := post(t, h, "/look", url.Values{"token": {"wrong"}})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = post(t, h, "/book", url.Values{"team_id": {"T2"}, "text": {"#4 @ 8 pm"}})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Empty(t, q.tasks)
}

func TestHelp(t *testing.T) {
	s, q := newServer(t)
	h := s.Routes()

	_, text := post(t, h, "/look", url.Values{"text": {"help"}})
	assert.Equal(t, messages.LookHelp, text)
	_, text = post(t, h, "/book", url.Values{"text": {"help"}})
	assert.Equal(t, messages.BookHelp, text)
	assert.Empty(t, q.tasks)
}

func TestBookChannelAllowList(t *testing.T) {
	s, q := newServer(t)
	h := s.Routes()

	_, text := post(t, h, "/book", url.Values{"channel_id": {"CRANDOM"}, "text": {"#4 @ 8 pm"}})
	assert.Equal(t, "I can only book courts in <#CGEN|general>", text)
	assert.Empty(t, q.tasks)

	_, text = post(t, h, "/book", url.Values{"channel_id": {"CSQUASH"}, "text": {"#4 @ 8 pm"}})
	assert.Equal(t, messages.Booking, text)
	require.Len(t, q.tasks, 1)
	assert.Equal(t, dispatch.CommandBook, q.tasks[0].Command)

	s.BookingChannels = nil
	_, text = post(t, h, "/book", url.Values{"channel_id": {"CRANDOM"}, "text": {"#4 @ 8 pm"}})
	assert.Equal(t, messages.Booking, text)
}

func TestEmbargo(t *testing.T) {
	s, q := newServer(t)
	e, err := reservation.ParseEmbargo("2026-10-01", "2026-10-31")
	require.NoError(t, err)
	s.Embargo = e
	h := s.Routes()

	_, text := post(t, h, "/look", nil)
	assert.Equal(t, "Courts are closed 2026-10-01 through 2026-10-31.", text)
	_, text = post(t, h, "/book", url.Values{"text": {"#4 @ 8 pm"}})
	assert.Equal(t, "Unable to book. Courts are closed 2026-10-01 through 2026-10-31.", text)
	assert.Empty(t, q.tasks)
}

func TestDispatchFailure(t *testing.T) {
	s, q := newServer(t)
	q.err = errors.New("broker down")

	_, text := post(t, s.Routes(), "/book", url.Values{"text": {"#4 @ 8 pm"}})
	assert.Equal(t, messages.Failure, text)
}
