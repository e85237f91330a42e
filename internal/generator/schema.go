package generator

const schemaName = "sidequest_v1"

// questSchema is the strict structured-output contract sent with every call.
var questSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"title": map[string]any{"type": "string"},
		"vibe":  map[string]any{"type": "string"},
		"steps": map[string]any{
			"type":     "array",
			"minItems": 1,
			"maxItems": 3,
			"items":    map[string]any{"type": "string"},
		},
		"twist":            map[string]any{"type": "string"},
		"completion":       map[string]any{"type": "string"},
		"soundtrack_query": map[string]any{"type": "string"},
	},
	"required": []string{"title", "vibe", "steps", "twist", "completion", "soundtrack_query"},
}

type textFormat struct {
	Type   string         `json:"type"`
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

func questFormat() textFormat {
	return textFormat{
		Type:   "json_schema",
		Name:   schemaName,
		Strict: true,
		Schema: questSchema,
	}
}
