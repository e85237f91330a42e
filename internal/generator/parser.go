package generator

import (
	"encoding/json"
	"strings"

	"github.com/Fbari2002/side-quest/internal/model"
)

// questResponse mirrors the JSON object returned by the LLM. Fields are left
// untyped so that a wrong type empties the field instead of failing the
// whole decode.
type questResponse struct {
	Title           any `json:"title"`
	Vibe            any `json:"vibe"`
	Steps           any `json:"steps"`
	Twist           any `json:"twist"`
	Completion      any `json:"completion"`
	SoundtrackQuery any `json:"soundtrack_query"`
}

// ParseQuest attempts to turn model text into a servable quest.
// Tries the whole text first, then the span from the first { to the last }.
func ParseQuest(text string) (model.Quest, bool) {
	text = strings.TrimSpace(text)

	candidates := []string{text}
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			candidates = append(candidates, text[start:end+1])
		}
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		var resp questResponse
		if err := json.Unmarshal([]byte(candidate), &resp); err != nil {
			continue
		}
		if q, ok := resp.quest().Normalize(); ok {
			return q, true
		}
	}

	return model.Quest{}, false
}

func (r questResponse) quest() model.Quest {
	q := model.Quest{
		Title:           stringField(r.Title),
		Vibe:            stringField(r.Vibe),
		Twist:           stringField(r.Twist),
		Completion:      stringField(r.Completion),
		SoundtrackQuery: stringField(r.SoundtrackQuery),
	}
	if steps, ok := r.Steps.([]any); ok {
		for _, s := range steps {
			if str, ok := s.(string); ok {
				q.Steps = append(q.Steps, str)
			}
		}
	}
	return q
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}
