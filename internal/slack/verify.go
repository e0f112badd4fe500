package slack

import (
	"crypto/subtle"
	"errors"
	"net/http"

	slackapi "github.com/slack-go/slack"
)

var ErrUnverified = errors.New("slash command not from the configured workspace")

// Verifier checks the legacy verification token and team id Slack sends with
// every slash command.
type Verifier struct {
	Token  string
	TeamID string
}

func (v Verifier) Verify(cmd slackapi.SlashCommand) error {
	if v.Token == "" || v.TeamID == "" {
		return ErrUnverified
	}
	tokenOK := subtle.ConstantTimeCompare([]byte(cmd.Token), []byte(v.Token)) == 1
	teamOK := subtle.ConstantTimeCompare([]byte(cmd.TeamID), []byte(v.TeamID)) == 1
	if !tokenOK || !teamOK {
		return ErrUnverified
	}
	return nil
}

// Parse reads a slash command form from r.
func Parse(r *http.Request) (slackapi.SlashCommand, error) {
	return slackapi.SlashCommandParse(r)
}
