package quest

import "github.com/Fbari2002/side-quest/internal/model"

// Path names how a response's quest was obtained.
type Path string

const (
	PathPrimary            Path = "primary"
	PathRepair             Path = "repair"
	PathFallback           Path = "fallback"
	PathCircuitBreakerOpen Path = "circuit-breaker-open"
	PathTimeout            Path = "openai-timeout"
	PathQuotaOrRateLimit   Path = "quota-or-rate-limit"
	PathRequestFailed      Path = "openai-request-failed"
	PathMissingKey         Path = "missing-key"
	PathValidationError    Path = "validation-error"
)

// Mode says whether the quest came from the LLM.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// Mode reports the mode implied by the path.
func (p Path) Mode() Mode {
	if p == PathPrimary || p == PathRepair {
		return ModeOnline
	}
	return ModeOffline
}

// Result is a served quest with its diagnostics.
type Result struct {
	Quest model.Quest
	Path  Path
}

// Mode is shorthand for r.Path.Mode().
func (r Result) Mode() Mode { return r.Path.Mode() }
