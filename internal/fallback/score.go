package fallback

import (
	"strings"

	"github.com/Fbari2002/side-quest/internal/model"
)

// Tags understood by the scorer, beyond the energy values themselves.
const (
	TagCalm       = "calm"
	TagChaotic    = "chaotic"
	TagEnergetic  = "energetic"
	TagSocial     = "social"
	TagCurious    = "curious"
	TagCreative   = "creative"
	TagReflective = "reflective"
)

// chaoticPenaltyCeiling is the chaos level at which a low-sensory user is
// considered to have opted in to chaotic quests.
const chaoticPenaltyCeiling = 8

var (
	curiousMoods    = []string{"curious", "bored", "restless", "explore"}
	creativeMoods   = []string{"creative", "idea", "make", "draw"}
	reflectiveMoods = []string{"overwhelmed", "sad", "tired", "thoughtful"}
)

// Score rates how well a catalog entry fits the request. Higher is better;
// the result may be negative.
func Score(q model.OfflineQuest, req model.QuestRequest) int {
	score := 0

	if q.HasTag(string(req.Energy)) {
		score += 3
	}
	if q.HasTag(TagSocial) && req.Social == model.SocialSocial {
		score += 2
	}
	if q.HasTag(TagCalm) && (req.Energy == model.EnergyLow || req.LowSensory) {
		score += 2
	}
	if q.HasTag(TagChaotic) && req.Chaos >= 7 {
		score += 2
	}
	if q.HasTag(TagEnergetic) && req.Energy == model.EnergyHigh {
		score += 2
	}

	mood := strings.ToLower(req.Mood)
	if q.HasTag(TagCurious) && containsAny(mood, curiousMoods) {
		score++
	}
	if q.HasTag(TagCreative) && containsAny(mood, creativeMoods) {
		score++
	}
	if q.HasTag(TagReflective) && containsAny(mood, reflectiveMoods) {
		score++
	}

	if req.LowSensory && q.HasTag(TagChaotic) && req.Chaos < chaoticPenaltyCeiling {
		score -= 3
	}

	return score
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
