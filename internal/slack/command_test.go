package slack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlucioni/courtbot/internal/domain/reservation"
)

func TestParseBookAccepts(t *testing.T) {
	cases := []struct {
		text string
		want reservation.Request
	}{
		{"#4 @ 8 pm", reservation.Request{Court: 4, Hour: 20}},
		{"#4 at 8pm", reservation.Request{Court: 4, Hour: 20}},
		{"#1@7AM tomorrow", reservation.Request{Court: 1, Hour: 7, DayOffset: 1}},
		{"tomorrow please #5 around @ 12 am", reservation.Request{Court: 5, Hour: 0, DayOffset: 1}},
		{"court #2 @ 12 PM thanks!", reservation.Request{Court: 2, Hour: 12}},
		{"  #3   at   9   pm  ", reservation.Request{Court: 3, Hour: 21}},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got, err := ParseBook(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseBookRejects(t *testing.T) {
	for _, text := range []string{
		"",
		"help",
		"#4",
		"#4 8 pm",
		"#4 @ 8",
		"#4 @ pm",
		"#6 @ 8 pm",
		"#0 @ 8 pm",
		"#4 @ 13 pm",
		"#4 @ 0 am",
		"@ 8 pm #4",
		"8 pm #4",
		"#4 #5 @ 8 pm",
		"#4 @ 8 pm @ 9 pm",
		"#4 @ 8 pm #2",
		"#99999999999999999999 @ 8 pm",
	} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseBook(text)
			assert.ErrorIs(t, err, reservation.ErrParse)
		})
	}
}

func TestParseLook(t *testing.T) {
	assert.Equal(t, 0, ParseLook(""))
	assert.Equal(t, 1, ParseLook("tomorrow"))
	assert.Equal(t, 1, ParseLook("  Tomorrow?"))
	assert.Equal(t, 0, ParseLook("tomorrowish"))
}

func TestWantsHelp(t *testing.T) {
	assert.True(t, WantsHelp("help"))
	assert.True(t, WantsHelp("HELP me"))
	assert.False(t, WantsHelp("#4 @ 8 pm"))
	assert.False(t, WantsHelp("helpful"))
}
