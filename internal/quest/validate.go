package quest

import (
	"strings"

	"github.com/Fbari2002/side-quest/internal/model"
)

// ValidationError names the first field of a request that failed a check.
// Its text is safe to show to clients.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrInvalidPayload    ValidationError = "Invalid payload."
	ErrMoodRequired      ValidationError = "mood is required."
	ErrTimeRequired      ValidationError = "time_available is required."
	ErrInvalidEnergy     ValidationError = "Invalid energy."
	ErrInvalidSocial     ValidationError = "Invalid social value."
	ErrInvalidChaos      ValidationError = "Invalid chaos."
	ErrInvalidNoSpend    ValidationError = "Invalid noSpend."
	ErrInvalidLowSensory ValidationError = "Invalid lowSensory."
)

// Validate checks a decoded JSON request body and converts it into a
// QuestRequest. Checks run in a fixed order and stop at the first failure.
func Validate(payload any) (model.QuestRequest, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return model.QuestRequest{}, ErrInvalidPayload
	}

	mood, _ := obj["mood"].(string)
	if strings.TrimSpace(mood) == "" {
		return model.QuestRequest{}, ErrMoodRequired
	}

	timeAvailable, _ := obj["time_available"].(string)
	if strings.TrimSpace(timeAvailable) == "" {
		return model.QuestRequest{}, ErrTimeRequired
	}

	energy, _ := obj["energy"].(string)
	if !model.Energy(energy).Valid() {
		return model.QuestRequest{}, ErrInvalidEnergy
	}

	social, _ := obj["social"].(string)
	if !model.Social(social).Valid() {
		return model.QuestRequest{}, ErrInvalidSocial
	}

	chaos, ok := obj["chaos"].(float64)
	if !ok || chaos < 0 || chaos > 10 {
		return model.QuestRequest{}, ErrInvalidChaos
	}

	noSpend, ok := obj["noSpend"].(bool)
	if !ok {
		return model.QuestRequest{}, ErrInvalidNoSpend
	}

	lowSensory, ok := obj["lowSensory"].(bool)
	if !ok {
		return model.QuestRequest{}, ErrInvalidLowSensory
	}

	return model.QuestRequest{
		Mood:          mood,
		TimeAvailable: timeAvailable,
		Energy:        model.Energy(energy),
		Social:        model.Social(social),
		Chaos:         chaos,
		NoSpend:       noSpend,
		LowSensory:    lowSensory,
	}, nil
}
