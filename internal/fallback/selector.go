package fallback

import (
	"math/rand/v2"

	"github.com/Fbari2002/side-quest/internal/model"
)

// Rand is the randomness the selector draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Recents remembers which titles were served lately.
type Recents interface {
	RecentTitles() []string
	RecordTitle(title string)
}

// DefaultRerolls is how many extra draws are spent avoiding a recent title.
const DefaultRerolls = 3

// Selector picks offline quests from a catalog.
type Selector struct {
	Catalog *Catalog
	Recents Recents
	Rand    Rand
	Rerolls int
}

// NewSelector returns a selector using the global random source.
func NewSelector(c *Catalog, recents Recents, rerolls int) *Selector {
	return &Selector{
		Catalog: c,
		Recents: recents,
		Rand:    globalRand{},
		Rerolls: rerolls,
	}
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

type weighted struct {
	quest  model.OfflineQuest
	weight int
}

// Select returns the best-fitting offline quest for req, preferring titles
// not served recently, and records the served title.
func (s *Selector) Select(req model.QuestRequest) model.Quest {
	q := s.pick(req)
	if s.Recents != nil {
		s.Recents.RecordTitle(q.Title)
	}
	return q
}

func (s *Selector) pick(req model.QuestRequest) model.Quest {
	if s.Catalog == nil || len(s.Catalog.Quests) == 0 {
		return EmergencyQuest(req)
	}

	pool := s.pool(req)

	var recent []string
	if s.Recents != nil {
		recent = s.Recents.RecentTitles()
	}

	chosen := s.draw(pool)
	for i := 0; i < s.Rerolls && contains(recent, chosen.Title); i++ {
		chosen = s.draw(pool)
	}

	q, ok := chosen.Quest.Normalize()
	if !ok {
		return EmergencyQuest(req)
	}
	return q
}

// pool returns the weighted candidates for req: entries with a positive
// score, or every entry at weight 1 when none scores.
func (s *Selector) pool(req model.QuestRequest) []weighted {
	var viable []weighted
	for _, q := range s.Catalog.Quests {
		if score := Score(q, req); score > 0 {
			viable = append(viable, weighted{quest: q, weight: score})
		}
	}
	if len(viable) > 0 {
		return viable
	}

	uniform := make([]weighted, len(s.Catalog.Quests))
	for i, q := range s.Catalog.Quests {
		uniform[i] = weighted{quest: q, weight: 1}
	}
	return uniform
}

// draw walks cumulative weights and returns the first entry whose running
// total reaches a uniform value in [0, total).
func (s *Selector) draw(pool []weighted) model.OfflineQuest {
	total := 0
	for _, w := range pool {
		total += max(w.weight, 1)
	}

	r := s.Rand.Float64() * float64(total)
	acc := 0
	for _, w := range pool {
		acc += max(w.weight, 1)
		if float64(acc) >= r {
			return w.quest
		}
	}
	return pool[len(pool)-1].quest
}

func contains(list []string, s string) bool {
	for _, it := range list {
		if it == s {
			return true
		}
	}
	return false
}
