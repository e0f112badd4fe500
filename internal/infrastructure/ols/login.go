package ols

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

// Login authenticates sess. The site answers wrong credentials with an
// ordinary page, so only transport failures are reported here; a bad login
// shows up later as an unconfirmed reservation.
func (c *Client) Login(ctx context.Context, sess *Session, creds reservation.Credentials) error {
	// ASP.NET only issues the forms auth cookie when one is already present.
	// The placeholder is overwritten by the login response.
	sess.Set(c.base, authCookieName, authCookiePlaceholder)

	form := loginForm(creds)
	_, _, err := c.do(ctx, c.httpClient(sess), http.MethodPost, loginPath, contentTypeForm, []byte(form.Encode()))
	return err
}

func loginForm(creds reservation.Credentials) url.Values {
	v := url.Values{}
	v.Set(fieldEventTarget, "")
	v.Set(fieldEventArgument, "")
	v.Set(fieldUserName, creds.Username)
	v.Set(fieldPassword, creds.Password)
	v.Set(fieldLoginButton, "Log In")
	return v
}
