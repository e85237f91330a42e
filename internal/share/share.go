// Package share renders quests for copying into messages and builds the
// soundtrack search links shown next to them.
package share

import (
	"net/url"
	"strings"

	"github.com/Fbari2002/side-quest/internal/model"
)

const (
	defaultTitle      = "Untitled Quest"
	defaultVibe       = "Mysterious"
	defaultTwist      = "A tiny surprise appears."
	defaultCompletion = "When you feel complete, mark it done."
	defaultSoundtrack = "cinematic cozy mystery lofi"
	defaultStep       = "Take one small mindful action."
)

// Format renders q as plain share text. Blank fields get placeholders and
// the steps are padded or cut to exactly three.
func Format(q model.Quest) string {
	steps := make([]string, 0, model.StepCount)
	for _, s := range q.Steps {
		if s = strings.TrimSpace(s); s != "" {
			steps = append(steps, s)
		}
		if len(steps) == model.StepCount {
			break
		}
	}
	for len(steps) < model.StepCount {
		steps = append(steps, defaultStep)
	}

	lines := []string{
		"SideQuest: " + line(q.Title, defaultTitle),
		"Vibe: " + line(q.Vibe, defaultVibe),
		"1) " + steps[0],
		"2) " + steps[1],
		"3) " + steps[2],
		"Plot twist: " + line(q.Twist, defaultTwist),
		"To complete: " + line(q.Completion, defaultCompletion),
		"🎧 " + SpotifyWebURL(line(q.SoundtrackQuery, defaultSoundtrack)),
	}
	return strings.Join(lines, "\n")
}

func line(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

// SpotifyWebURL returns the browser search link for query.
func SpotifyWebURL(query string) string {
	return "https://open.spotify.com/search/" + escapeComponent(query)
}

// SpotifyAppURL returns the app deep link for query.
func SpotifyAppURL(query string) string {
	return "spotify:search:" + escapeComponent(query)
}

// escapeComponent percent-encodes s for a single URL segment, spaces as %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// DedupKey identifies a quest by its lowercased title and steps so the same
// quest is not saved twice.
func DedupKey(q model.Quest) string {
	steps := make([]string, len(q.Steps))
	for i, s := range q.Steps {
		steps[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return strings.ToLower(strings.TrimSpace(q.Title)) + "|" + strings.Join(steps, "|")
}
