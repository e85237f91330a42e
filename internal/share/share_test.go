package share

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fbari2002/side-quest/internal/model"
)

func TestFormat(t *testing.T) {
	q := model.Quest{
		Title:           "Main Character: Window Cartographer",
		Vibe:            "quiet noir",
		Steps:           []string{"Pick a window.", " Sketch three shapes. ", "Name the map."},
		Twist:           "One shape must be a door.",
		Completion:      "Sign the map.",
		SoundtrackQuery: "rainy jazz",
	}

	want := strings.Join([]string{
		"SideQuest: Main Character: Window Cartographer",
		"Vibe: quiet noir",
		"1) Pick a window.",
		"2) Sketch three shapes.",
		"3) Name the map.",
		"Plot twist: One shape must be a door.",
		"To complete: Sign the map.",
		"🎧 https://open.spotify.com/search/rainy%20jazz",
	}, "\n")
	assert.Equal(t, want, Format(q))
}

func TestFormatPlaceholders(t *testing.T) {
	out := Format(model.Quest{Title: "  ", Steps: []string{"", "Only step", "  "}})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)

	assert.Equal(t, "SideQuest: Untitled Quest", lines[0])
	assert.Equal(t, "Vibe: Mysterious", lines[1])
	assert.Equal(t, "1) Only step", lines[2])
	assert.Equal(t, "2) Take one small mindful action.", lines[3])
	assert.Equal(t, "3) Take one small mindful action.", lines[4])
	assert.Equal(t, "Plot twist: A tiny surprise appears.", lines[5])
	assert.Equal(t, "To complete: When you feel complete, mark it done.", lines[6])
	assert.Equal(t, "🎧 https://open.spotify.com/search/cinematic%20cozy%20mystery%20lofi", lines[7])
}

func TestFormatKeepsFirstThreeSteps(t *testing.T) {
	lines := strings.Split(Format(model.Quest{Steps: []string{"a", "b", "c", "d"}}), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "3) c", lines[4])
	assert.Equal(t, "Plot twist: A tiny surprise appears.", lines[5])
}

func TestSpotifyURLs(t *testing.T) {
	assert.Equal(t, "https://open.spotify.com/search/lo-fi%20%26%20rain%2Fnight", SpotifyWebURL("lo-fi & rain/night"))
	assert.Equal(t, "spotify:search:caf%C3%A9%20beats", SpotifyAppURL("café beats"))
}

func TestDedupKey(t *testing.T) {
	a := model.Quest{Title: " Roof Stars ", Steps: []string{"Look UP", "count"}}
	b := model.Quest{Title: "roof stars", Steps: []string{"look up ", " COUNT"}}

	assert.Equal(t, "roof stars|look up|count", DedupKey(a))
	assert.Equal(t, DedupKey(a), DedupKey(b))
	assert.NotEqual(t, DedupKey(a), DedupKey(model.Quest{Title: "roof stars", Steps: []string{"count", "look up"}}))
}
