package ols

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

const (
	testViewState = "dDwtMTI3OTMzNDM4NDs7Pg=="
	testRelation  = "rn-42"
	realAuth      = "forms-auth-ticket"
	thankYouPath  = "/MIT/Members/Scheduler/ThankYou.aspx"
)

// fakeSite mimics the parts of the booking site the client touches.
type fakeSite struct {
	t *testing.T

	mu       sync.Mutex
	requests []string
	staged   map[string]string
	confirm  url.Values
	lookup   availabilityRequest

	username, password string

	confirmPage  string
	redirectBody string
	finalPage    string
}

func newFakeSite(t *testing.T) (*fakeSite, *httptest.Server) {
	f := &fakeSite{
		t:        t,
		username: "zcenter",
		password: "hunter2",
		confirmPage: fmt.Sprintf(`<html><body><form>
<input type="hidden" name="__VIEWSTATE" id="__VIEWSTATE" value="%s" />
<input type="hidden" name="ctl00$rnHf" id="ctl00_rnHf" value="%s" />
</form></body></html>`, testViewState, testRelation),
		redirectBody: "1|#||4|44|pageRedirect||%2fMIT%2fMembers%2fScheduler%2fThankYou.aspx%3fid%3d9|",
		finalPage:    `<html><body><span id="ctl00_pageContentHolder_lblThankYou">Thank you for your reservation.</span></body></html>`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/MIT/Login.aspx", f.login)
	mux.HandleFunc("/MIT/Default.aspx", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>welcome</html>")
	})
	mux.HandleFunc("/MIT/Library/OlsService.asmx/GetSchedulerResourceAvailability", f.availability)
	mux.HandleFunc("/MIT/Library/OlsService.asmx/SetScheduleInformation", f.stage)
	mux.HandleFunc("/MIT/Members/Scheduler/AddFamilyMembersScheduler.aspx", f.confirmHandler)
	mux.HandleFunc(thankYouPath, func(w http.ResponseWriter, r *http.Request) {
		if !f.authed(r) {
			http.Redirect(w, r, "/MIT/Login.aspx", http.StatusFound)
			return
		}
		_, _ = io.WriteString(w, f.finalPage)
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeSite) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeSite) authed(r *http.Request) bool {
	c, err := r.Cookie(authCookieName)
	return err == nil && c.Value == realAuth
}

func (f *fakeSite) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Query().Get("AspxAutoDetectCookieSupport") != "1" {
		http.Error(w, "bad login request", http.StatusBadRequest)
		return
	}
	_ = r.ParseForm()
	// Without the placeholder the real site silently skips the auth cookie.
	if _, err := r.Cookie(authCookieName); err == nil &&
		r.PostForm.Get(fieldUserName) == f.username && r.PostForm.Get(fieldPassword) == f.password {
		http.SetCookie(w, &http.Cookie{Name: authCookieName, Value: realAuth, Path: "/"})
	}
	http.SetCookie(w, &http.Cookie{Name: "ASP.NET_SessionId", Value: "sess-1", Path: "/"})
	http.Redirect(w, r, "/MIT/Default.aspx", http.StatusFound)
}

func (f *fakeSite) availability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	type minute struct {
		TimeID      int  `json:"TimeId"`
		IsAvailable bool `json:"IsAvailable"`
	}
	type resource struct {
		ID           int      `json:"Id"`
		Availability []minute `json:"Availability"`
	}
	var out []resource
	for _, id := range req.ResourceIDs {
		var n int
		fmt.Sscanf(id, "%d", &n)
		res := resource{ID: n}
		for m := 0; m < 1440; m++ {
			res.Availability = append(res.Availability, minute{TimeID: m, IsAvailable: n == 17 && m == 1200})
		}
		out = append(out, res)
	}
	w.Header().Set("content-type", "application/json")
	f.mu.Lock()
	f.lookup = req
	f.mu.Unlock()
	_ = json.NewEncoder(w).Encode(map[string]any{"d": map[string]any{"Value": out}})
}

func (f *fakeSite) stage(w http.ResponseWriter, r *http.Request) {
	if !f.authed(r) {
		http.Error(w, "not logged in", http.StatusUnauthorized)
		return
	}
	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "fields must be strings: "+err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.staged = body
	f.mu.Unlock()
	_, _ = io.WriteString(w, `{"d":null}`)
}

func (f *fakeSite) confirmHandler(w http.ResponseWriter, r *http.Request) {
	if !f.authed(r) {
		http.Redirect(w, r, "/MIT/Login.aspx", http.StatusFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		_, _ = io.WriteString(w, f.confirmPage)
	case http.MethodPost:
		if r.UserAgent() == "" || r.UserAgent() == "Go-http-client/1.1" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		_ = r.ParseForm()
		f.mu.Lock()
		f.confirm = r.PostForm
		f.mu.Unlock()
		_, _ = io.WriteString(w, f.redirectBody)
	}
}
