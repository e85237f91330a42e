package model

// Energy is how much energy the user reports having.
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// Valid reports whether e is one of the known energy levels.
func (e Energy) Valid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	}
	return false
}

// Social says whether the quest is done alone or with people.
type Social string

const (
	SocialSolo   Social = "solo"
	SocialSocial Social = "social"
)

// Valid reports whether s is one of the known social modes.
func (s Social) Valid() bool {
	return s == SocialSolo || s == SocialSocial
}

// QuestRequest is a validated request for one quest.
type QuestRequest struct {
	Mood          string  `json:"mood"`
	TimeAvailable string  `json:"time_available"`
	Energy        Energy  `json:"energy"`
	Social        Social  `json:"social"`
	Chaos         float64 `json:"chaos"`
	NoSpend       bool    `json:"noSpend"`
	LowSensory    bool    `json:"lowSensory"`
}

// Quest is the adventure returned to clients.
type Quest struct {
	Title           string   `json:"title" yaml:"title"`
	Vibe            string   `json:"vibe" yaml:"vibe"`
	Steps           []string `json:"steps" yaml:"steps"`
	Twist           string   `json:"twist" yaml:"twist"`
	Completion      string   `json:"completion" yaml:"completion"`
	SoundtrackQuery string   `json:"soundtrack_query" yaml:"soundtrack_query"`
}

// OfflineQuest is a pre-written catalog quest tagged with the moods it suits.
type OfflineQuest struct {
	Quest       `yaml:",inline"`
	FallbackFor []string `json:"fallback_for" yaml:"fallback_for"`
}

// HasTag reports whether the entry is tagged with tag.
func (o OfflineQuest) HasTag(tag string) bool {
	for _, t := range o.FallbackFor {
		if t == tag {
			return true
		}
	}
	return false
}
