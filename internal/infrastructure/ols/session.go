package ols

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"golang.org/x/net/publicsuffix"
)

// Session carries the cookies of one booking attempt. Every stage of the
// attempt receives the same Session; it is dropped when the attempt ends.
type Session struct {
	jar *cookiejar.Jar
}

func NewSession() (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	return &Session{jar: jar}, nil
}

// Set stores a cookie for u's host as if the server had sent it.
func (s *Session) Set(u *url.URL, name, value string) {
	s.jar.SetCookies(u, []*http.Cookie{{Name: name, Value: value, Path: "/"}})
}

// Value returns the value of the named cookie for u, if any.
func (s *Session) Value(u *url.URL, name string) (string, bool) {
	for _, c := range s.jar.Cookies(u) {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}
