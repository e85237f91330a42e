package quest

import (
	"context"

	"github.com/Fbari2002/side-quest/internal/generator"
	"github.com/Fbari2002/side-quest/internal/model"
)

// Attempter performs one structured LLM call.
type Attempter interface {
	Attempt(ctx context.Context, prompt string) generator.Attempt
}

type controllerState int

const (
	statePrimary controllerState = iota
	stateRepair
	stateFallback
)

// outcome is the terminal result of the controller. A non-nil err is a
// transport failure that the caller must classify. The fallback state carries
// no quest; the caller draws one from the offline selector.
type outcome struct {
	quest model.Quest
	path  Path
	err   error
}

// controller runs primary -> repair -> fallback. Calls are strictly
// sequential and there are never more than two of them.
type controller struct {
	attempter Attempter
}

func (c *controller) run(ctx context.Context, primaryPrompt string) outcome {
	var raw string

	st := statePrimary
	for {
		switch st {
		case statePrimary:
			a := c.attempter.Attempt(ctx, primaryPrompt)
			if a.Err != nil {
				return outcome{err: a.Err}
			}
			if a.Quest != nil {
				return outcome{quest: *a.Quest, path: PathPrimary}
			}
			raw = a.Raw
			st = stateRepair

		case stateRepair:
			a := c.attempter.Attempt(ctx, generator.RepairPrompt(raw))
			if a.Err != nil {
				return outcome{err: a.Err}
			}
			if a.Quest != nil {
				return outcome{quest: *a.Quest, path: PathRepair}
			}
			st = stateFallback

		case stateFallback:
			return outcome{path: PathFallback}
		}
	}
}
