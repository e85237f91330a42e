package model

import "strings"

// StepCount is the exact number of steps every served quest carries.
const StepCount = 3

// MaxStepWords is the exclusive upper bound on words per step.
const MaxStepWords = 20

// FillerStep pads quests that come back with too few usable steps.
const FillerStep = "Take one calm breath and note one vivid detail around you."

// Normalize trims every field, keeps at most three short steps and pads the
// list to exactly three. It returns false when any text field is empty, in
// which case the quest must not be served.
//
// Normalize is idempotent: normalizing an already normalized quest returns it
// unchanged.
func (q Quest) Normalize() (Quest, bool) {
	out := Quest{
		Title:           strings.TrimSpace(q.Title),
		Vibe:            strings.TrimSpace(q.Vibe),
		Twist:           strings.TrimSpace(q.Twist),
		Completion:      strings.TrimSpace(q.Completion),
		SoundtrackQuery: strings.TrimSpace(q.SoundtrackQuery),
	}

	steps := make([]string, 0, StepCount)
	for _, step := range q.Steps {
		step = strings.TrimSpace(step)
		if step == "" || len(strings.Fields(step)) >= MaxStepWords {
			continue
		}
		steps = append(steps, step)
		if len(steps) == StepCount {
			break
		}
	}
	for len(steps) < StepCount {
		steps = append(steps, FillerStep)
	}
	out.Steps = steps

	if out.Title == "" || out.Vibe == "" || out.Twist == "" || out.Completion == "" || out.SoundtrackQuery == "" {
		return Quest{}, false
	}
	return out, true
}
