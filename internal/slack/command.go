// Package slack is courtbot's edge to Slack: it reads slash commands and
// posts replies and notifications.
package slack

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

type tokenKind int

const (
	tokWord tokenKind = iota
	tokCourt
	tokAt
	tokNumber
	tokPeriod
	tokTomorrow
)

type token struct {
	kind tokenKind
	text string
	n    int
}

// tokenize splits command text into words, "#N" court references, "@"/"at"
// markers, numbers and am/pm periods. "8pm" yields a number and a period.
// Punctuation other than '#' and '@' separates tokens and is dropped.
func tokenize(text string) []token {
	var out []token
	rs := []rune(strings.ToLower(text))
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case r == '@':
			out = append(out, token{kind: tokAt, text: "@"})
			i++
		case r == '#':
			j := i + 1
			for j < len(rs) && unicode.IsDigit(rs[j]) {
				j++
			}
			if j == i+1 {
				out = append(out, token{kind: tokWord, text: "#"})
			} else {
				n, _ := strconv.Atoi(string(rs[i+1 : j]))
				out = append(out, token{kind: tokCourt, text: string(rs[i:j]), n: n})
			}
			i = j
		case unicode.IsDigit(r):
			j := i
			for j < len(rs) && unicode.IsDigit(rs[j]) {
				j++
			}
			n, err := strconv.Atoi(string(rs[i:j]))
			if err != nil {
				n = -1
			}
			out = append(out, token{kind: tokNumber, text: string(rs[i:j]), n: n})
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(rs) && unicode.IsLetter(rs[j]) {
				j++
			}
			out = append(out, word(string(rs[i:j])))
			i = j
		default:
			i++
		}
	}
	return out
}

func word(w string) token {
	switch w {
	case "at":
		return token{kind: tokAt, text: w}
	case "am", "pm":
		return token{kind: tokPeriod, text: w}
	case "tomorrow":
		return token{kind: tokTomorrow, text: w}
	}
	return token{kind: tokWord, text: w}
}

// ParseBook reads "/book" text such as "#4 @ 8 pm tomorrow". The court comes
// first, then "@" or "at", an hour 1..12 and am/pm. Other words may appear
// before the court, between the court and the time, and after the time.
func ParseBook(text string) (reservation.Request, error) {
	const (
		beforeCourt = iota
		beforeAt
		wantHour
		wantPeriod
		done
	)
	var (
		req    reservation.Request
		twelve int
		period string
		state  = beforeCourt
	)
	fail := func(format string, args ...any) (reservation.Request, error) {
		return reservation.Request{}, fmt.Errorf("%w: %s", reservation.ErrParse, fmt.Sprintf(format, args...))
	}

	for _, t := range tokenize(text) {
		if t.kind == tokTomorrow {
			req.DayOffset = 1
			continue
		}
		switch state {
		case beforeCourt:
			switch t.kind {
			case tokCourt:
				req.Court = t.n
				state = beforeAt
			case tokAt, tokPeriod:
				return fail("time before court")
			}
		case beforeAt:
			switch t.kind {
			case tokCourt:
				return fail("more than one court")
			case tokAt:
				state = wantHour
			case tokPeriod:
				return fail("missing @ before the hour")
			}
		case wantHour:
			if t.kind != tokNumber {
				return fail("expected an hour after @, got %q", t.text)
			}
			twelve = t.n
			state = wantPeriod
		case wantPeriod:
			if t.kind != tokPeriod {
				return fail("expected am or pm, got %q", t.text)
			}
			period = t.text
			state = done
		case done:
			switch t.kind {
			case tokCourt, tokAt, tokPeriod:
				return fail("unexpected %q after the time", t.text)
			}
		}
	}

	switch state {
	case beforeCourt:
		return fail("no court")
	case beforeAt, wantHour, wantPeriod:
		return fail("no complete time")
	}
	if req.Court < reservation.MinCourt || req.Court > reservation.MaxCourt {
		return fail("court #%d not in %d..%d", req.Court, reservation.MinCourt, reservation.MaxCourt)
	}
	hour, err := reservation.To24(twelve, period)
	if err != nil {
		return reservation.Request{}, err
	}
	req.Hour = hour
	return req, nil
}

// ParseLook returns the day offset a "/look" asks about.
func ParseLook(text string) int {
	for _, t := range tokenize(text) {
		if t.kind == tokTomorrow {
			return 1
		}
	}
	return 0
}

// WantsHelp reports whether the text asks for usage help.
func WantsHelp(text string) bool {
	for _, t := range tokenize(text) {
		if t.kind == tokWord && t.text == "help" {
			return true
		}
	}
	return false
}
