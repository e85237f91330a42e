package fallback

import (
	"fmt"
	"strings"

	"github.com/Fbari2002/side-quest/internal/model"
)

// EmergencyQuest is served when the catalog is empty or unusable. It is
// assembled from the request so it still respects sensory, social and
// spending limits.
func EmergencyQuest(req model.QuestRequest) model.Quest {
	sensory := "Choose a comfortable place that matches your mood."
	if req.LowSensory {
		sensory = "Choose a quiet, low-light spot and keep sounds gentle."
	}

	social := "Keep it solo with no required interactions."
	if req.Social == model.SocialSocial {
		social = "Invite one trusted person for ten calm minutes."
	}

	spend := "Optional: bring a small cozy treat."
	if req.NoSpend {
		spend = "Use what you already have. Spend nothing."
	}

	mood := strings.TrimSpace(req.Mood)
	if mood == "" {
		mood = "curious"
	}
	timeAvailable := strings.TrimSpace(req.TimeAvailable)
	if timeAvailable == "" {
		timeAvailable = "a short break"
	}

	return model.Quest{
		Title: "Main Character: Tiny Mystery Route",
		Vibe:  fmt.Sprintf("A %s energy quest tuned for %s.", mood, timeAvailable),
		Steps: []string{
			sensory,
			social + " " + spend,
			"Take a short walk, capture one photo, then write one clue sentence.",
		},
		Twist:           "Treat the photo as a clue from your future self, Main Character.",
		Completion:      "Quest complete when you save the clue and summarize the moment in one sentence.",
		SoundtrackQuery: "cinematic cozy mystery lofi",
	}
}
