package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier(t *testing.T) {
	v := Verifier{Token: "tok", TeamID: "T1"}
	assert.NoError(t, v.Verify(slackapi.SlashCommand{Token: "tok", TeamID: "T1"}))
	assert.ErrorIs(t, v.Verify(slackapi.SlashCommand{Token: "tok", TeamID: "T2"}), ErrUnverified)
	assert.ErrorIs(t, v.Verify(slackapi.SlashCommand{Token: "nope", TeamID: "T1"}), ErrUnverified)
	assert.ErrorIs(t, Verifier{}.Verify(slackapi.SlashCommand{}), ErrUnverified, "unconfigured verifier rejects everything")
}

func TestParseForm(t *testing.T) {
	form := url.Values{
		"token":        {"tok"},
		"team_id":      {"T1"},
		"channel_id":   {"C1"},
		"user_name":    {"rlucioni"},
		"command":      {"/book"},
		"text":         {"#4 @ 8 pm"},
		"response_url": {"https://hooks.slack.com/commands/1"},
	}
	r := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	cmd, err := Parse(r)
	require.NoError(t, err)
	assert.Equal(t, "#4 @ 8 pm", cmd.Text)
	assert.Equal(t, "C1", cmd.ChannelID)
	assert.Equal(t, "https://hooks.slack.com/commands/1", cmd.ResponseURL)
}

func TestResponderReply(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
	}))
	defer srv.Close()

	require.NoError(t, NewResponder().Reply(context.Background(), srv.URL, "Booked #4 at 8 PM (as a)"))
	assert.Equal(t, "in_channel", got["response_type"])
	assert.Equal(t, "Booked #4 at 8 PM (as a)", got["text"])

	assert.Error(t, NewResponder().Reply(context.Background(), "", "x"))
}

func TestResponderReplyHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired_url", http.StatusNotFound)
	}))
	defer srv.Close()

	assert.Error(t, NewResponder().Reply(context.Background(), srv.URL, "x"))
}

func TestChannelNotifier(t *testing.T) {
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat.postMessage", r.URL.Path)
		_ = r.ParseForm()
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true,"channel":"C1","ts":"1700000000.000100"}`)
	}))
	defer srv.Close()

	n := NewChannelNotifier("xoxb-test", "C1", srv.URL+"/")
	require.NoError(t, n.Notify(context.Background(), "Looking..."))
	assert.Equal(t, "C1", form.Get("channel"))
	assert.Equal(t, "Looking...", form.Get("text"))
}

func TestChannelNotifierSlackError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":false,"error":"channel_not_found"}`)
	}))
	defer srv.Close()

	err := NewChannelNotifier("xoxb-test", "C404", srv.URL+"/").Notify(context.Background(), "x")
	assert.ErrorContains(t, err, "channel_not_found")
}
