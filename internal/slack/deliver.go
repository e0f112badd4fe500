package slack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	slackapi "github.com/slack-go/slack"
)

const ResponseTypeInChannel = "in_channel"

// Responder posts replies to a slash command's response_url.
type Responder struct {
	HTTP *http.Client
}

func NewResponder() Responder {
	return Responder{HTTP: &http.Client{Timeout: 10 * time.Second}}
}

// Reply posts text visible to the whole channel.
func (r Responder) Reply(ctx context.Context, responseURL, text string) error {
	if responseURL == "" {
		return fmt.Errorf("reply: empty response url")
	}
	hc := r.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	msg := &slackapi.WebhookMessage{ResponseType: ResponseTypeInChannel, Text: text}
	if err := slackapi.PostWebhookCustomHTTPContext(ctx, responseURL, hc, msg); err != nil {
		return fmt.Errorf("reply: %w", err)
	}
	return nil
}

// ChannelNotifier posts to one channel with chat.postMessage.
type ChannelNotifier struct {
	api     *slackapi.Client
	channel string
}

// NewChannelNotifier builds a notifier for channel. apiURL overrides the Slack
// API root and is meant for tests; leave it empty otherwise.
func NewChannelNotifier(token, channel, apiURL string) *ChannelNotifier {
	opts := []slackapi.Option{slackapi.OptionHTTPClient(&http.Client{Timeout: 10 * time.Second})}
	if apiURL != "" {
		opts = append(opts, slackapi.OptionAPIURL(apiURL))
	}
	return &ChannelNotifier{api: slackapi.New(token, opts...), channel: channel}
}

func (n *ChannelNotifier) Notify(ctx context.Context, text string) error {
	if _, _, err := n.api.PostMessageContext(ctx, n.channel, slackapi.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("post to %s: %w", n.channel, err)
	}
	return nil
}
