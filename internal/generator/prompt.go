package generator

import (
	"encoding/json"

	"github.com/Fbari2002/side-quest/internal/model"
)

const systemPrompt = `You generate safe, legal SideQuest adventures. Output must match schema and be concise.`

// emptyRawPlaceholder stands in for the primary output when the model
// returned nothing at all.
const emptyRawPlaceholder = "No valid JSON received."

// GenerationPrompt builds the user prompt for a fresh quest. The variation
// token nudges the model away from repeating itself across identical inputs.
func GenerationPrompt(req model.QuestRequest, variation string) string {
	input, _ := json.Marshal(req)

	return `Generate one SideQuest in strict JSON.

Rules:
- Exactly 3 steps, each under 20 words
- Respect time_available and energy
- If social is "solo", no required interactions
- If noSpend is true, no paid suggestions
- If lowSensory is true, avoid crowds, loud/bright places, intense social
- Safe and legal only
- Lightly address user as "Main Character" without cringe
- Make it feel fresh: variation ` + variation + `

Input:
` + string(input)
}

// RepairPrompt asks the model to re-emit a previous malformed answer as
// schema-conforming JSON.
func RepairPrompt(badOutput string) string {
	if badOutput == "" {
		badOutput = emptyRawPlaceholder
	}
	return `Repair this into strict JSON matching schema and rules exactly. Return JSON only.

Rules:
- Fields: title, vibe, steps, twist, completion, soundtrack_query
- Exactly 3 steps, each under 20 words
- No other output

` + badOutput
}
