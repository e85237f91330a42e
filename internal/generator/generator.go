package generator

import (
	"context"

	"github.com/Fbari2002/side-quest/internal/model"
)

// Completer runs one schema-constrained completion and returns its raw text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Attempt is the outcome of a single LLM call.
type Attempt struct {
	Quest *model.Quest
	Raw   string
	Err   error
}

// Generator turns prompts into quests through a Completer.
type Generator struct {
	Completer Completer
}

// Attempt calls the upstream once. A response that does not parse yields a
// nil Quest with the raw text kept for repair; transport failures are
// reported in Err.
func (g *Generator) Attempt(ctx context.Context, prompt string) Attempt {
	raw, err := g.Completer.Complete(ctx, prompt)
	if err != nil {
		return Attempt{Raw: raw, Err: err}
	}

	q, ok := ParseQuest(raw)
	if !ok {
		return Attempt{Raw: raw}
	}
	return Attempt{Quest: &q, Raw: raw}
}
