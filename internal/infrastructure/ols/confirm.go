package ols

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

// Tokens are the hidden form values the confirmation page hands out and
// expects back verbatim on submit.
type Tokens struct {
	ViewState       string
	SessionRelation string
}

// ScrapeTokens reads both hidden fields from the confirmation page.
func ScrapeTokens(r io.Reader) (Tokens, error) {
	doc, err := htmlquery.Parse(r)
	if err != nil {
		return Tokens{}, fmt.Errorf("%w: parse confirmation page: %v", reservation.ErrScrape, err)
	}
	vs := htmlquery.FindOne(doc, byID(idViewState))
	if vs == nil {
		return Tokens{}, fmt.Errorf("%w: #%s", reservation.ErrScrape, idViewState)
	}
	rn := htmlquery.FindOne(doc, byID(idSessionRelation))
	if rn == nil {
		return Tokens{}, fmt.Errorf("%w: #%s", reservation.ErrScrape, idSessionRelation)
	}
	return Tokens{
		ViewState:       htmlquery.SelectAttr(vs, "value"),
		SessionRelation: htmlquery.SelectAttr(rn, "value"),
	}, nil
}

// RedirectPath pulls the next page out of an ASP.NET partial-page response.
// The body is a run of |-separated fields ending in "...|pageRedirect||<path>|";
// the path is the second-to-last field, percent-encoded.
func RedirectPath(body string) (string, error) {
	fields := strings.Split(body, "|")
	if len(fields) < 2 {
		return "", fmt.Errorf("%w: no redirect in confirmation response", reservation.ErrScrape)
	}
	path, err := url.PathUnescape(fields[len(fields)-2])
	if err != nil {
		return "", fmt.Errorf("%w: redirect path: %v", reservation.ErrScrape, err)
	}
	if path == "" {
		return "", fmt.Errorf("%w: empty redirect path", reservation.ErrScrape)
	}
	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("%w: redirect path %q: %v", reservation.ErrScrape, path, err)
	}
	if u.IsAbs() || u.Host != "" {
		return "", fmt.Errorf("%w: redirect %q is not a relative path", reservation.ErrScrape, path)
	}
	return path, nil
}

// UnconfirmedError carries the final page of a confirmation that did not
// show the thank-you marker, for logs.
type UnconfirmedError struct {
	StatusCode int
	URL        string
	Excerpt    string
}

func (e *UnconfirmedError) Error() string {
	return fmt.Sprintf("%v (status=%d url=%s)", reservation.ErrUnconfirmed, e.StatusCode, e.URL)
}

func (e *UnconfirmedError) Unwrap() error { return reservation.ErrUnconfirmed }

const excerptLen = 512

// Confirm turns the slot staged on sess into a reservation.
func (c *Client) Confirm(ctx context.Context, sess *Session) error {
	hc := c.httpClient(sess)

	_, page, err := c.do(ctx, hc, http.MethodGet, confirmPath, "", nil)
	if err != nil {
		return err
	}
	tokens, err := ScrapeTokens(bytes.NewReader(page))
	if err != nil {
		return err
	}

	form := confirmForm(tokens)
	_, partial, err := c.do(ctx, hc, http.MethodPost, confirmPath, contentTypeForm, []byte(form.Encode()))
	if err != nil {
		return err
	}
	next, err := RedirectPath(string(partial))
	if err != nil {
		return err
	}

	res, final, err := c.send(ctx, hc, http.MethodGet, next, "", nil)
	if err != nil {
		return err
	}
	if !thankYou(final) {
		excerpt := string(final)
		if len(excerpt) > excerptLen {
			excerpt = excerpt[:excerptLen]
		}
		return &UnconfirmedError{StatusCode: res.StatusCode, URL: res.Request.URL.String(), Excerpt: excerpt}
	}
	return nil
}

func confirmForm(t Tokens) url.Values {
	v := url.Values{}
	v.Set(fieldScriptManager, cartPanel+"|"+continueButton)
	v.Set(fieldEventTarget, continueButton)
	v.Set(fieldEventArgument, "")
	v.Set(fieldViewState, t.ViewState)
	v.Set(fieldSessionRelation, t.SessionRelation)
	v.Set(fieldAsyncPost, "true")
	return v
}

func thankYou(page []byte) bool {
	doc, err := htmlquery.Parse(bytes.NewReader(page))
	if err != nil {
		return false
	}
	n := htmlquery.FindOne(doc, byID(idThankYou))
	return n != nil && strings.TrimSpace(htmlquery.InnerText(n)) != ""
}

func byID(id string) string {
	return fmt.Sprintf(`//*[@id=%q]`, id)
}
