package domain

// Outcome is the terminal result of a unit of work's pipeline invocation.
type Outcome string

const (
	// OutcomeUpToDate means the unit was skipped because nothing changed since its previous run.
	OutcomeUpToDate Outcome = "up-to-date"
	// OutcomeCacheHit means the unit's outputs were restored from the build cache.
	OutcomeCacheHit Outcome = "from-cache"
	// OutcomeExecuted means the unit ran.
	OutcomeExecuted Outcome = "executed"
	// OutcomeFailed means capture, caching or execution failed.
	OutcomeFailed Outcome = "failed"
)

// Outcomes lists every terminal outcome.
var Outcomes = []Outcome{OutcomeUpToDate, OutcomeCacheHit, OutcomeExecuted, OutcomeFailed}

// IsAvoided reports whether the unit did not have to execute.
func (o Outcome) IsAvoided() bool {
	return o == OutcomeUpToDate || o == OutcomeCacheHit
}

// IsSuccessful reports whether the outcome may be persisted as history.
func (o Outcome) IsSuccessful() bool {
	return o == OutcomeUpToDate || o == OutcomeCacheHit || o == OutcomeExecuted
}
