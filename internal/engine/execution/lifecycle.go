package execution

import (
	"github.com/felixgeelhaar/statekit"
	"go.trai.ch/avert/internal/core/domain"
)

// Phase is a state of a unit of work within one pipeline invocation.
type Phase string

// State identifiers of the lifecycle machine.
const (
	statePending        = "pending"
	stateCapturingState = "capturing-state"
	stateDelegated      = "delegated"
	stateUpToDate       = "up-to-date"
	stateCacheHit       = "cache-hit"
	stateExecuted       = "executed"
	stateFailed         = "failed"
)

const (
	// PhasePending is the initial phase.
	PhasePending Phase = statePending
	// PhaseCapturingState is entered while the before-execution state is captured.
	PhaseCapturingState Phase = stateCapturingState
	// PhaseDelegated is entered once capture handed over to the downstream steps.
	PhaseDelegated Phase = stateDelegated
	// PhaseUpToDate is terminal.
	PhaseUpToDate Phase = stateUpToDate
	// PhaseCacheHit is terminal.
	PhaseCacheHit Phase = stateCacheHit
	// PhaseExecuted is terminal.
	PhaseExecuted Phase = stateExecuted
	// PhaseFailed is terminal.
	PhaseFailed Phase = stateFailed
)

// Event types for the lifecycle state machine.
const (
	EventCapture  = "CAPTURE"
	EventDelegate = "DELEGATE"
	EventUpToDate = "UP_TO_DATE"
	EventCacheHit = "CACHE_HIT"
	EventExecuted = "EXECUTED"
	EventFail     = "FAIL"
)

var outcomeEvents = map[domain.Outcome]statekit.EventType{
	domain.OutcomeUpToDate: EventUpToDate,
	domain.OutcomeCacheHit: EventCacheHit,
	domain.OutcomeExecuted: EventExecuted,
	domain.OutcomeFailed:   EventFail,
}

// lifecycleContext is the statekit context type. The lifecycle keeps no data
// beyond its current state.
type lifecycleContext struct{}

// Lifecycle tracks a unit of work through
// Pending -> CapturingState -> Delegated -> {UpToDate | CacheHit | Executed | Failed}.
// Failed is also reachable from Pending and CapturingState. A Lifecycle is
// owned by a single pipeline invocation and is not safe for concurrent use.
type Lifecycle struct {
	interp *statekit.Interpreter[lifecycleContext]
	// final is set once the machine is stopped.
	final Phase
}

// NewLifecycle creates a started Lifecycle in PhasePending.
func NewLifecycle() (*Lifecycle, error) {
	machine, err := statekit.NewMachine[lifecycleContext]("unit-of-work").
		WithInitial(statePending).
		WithContext(lifecycleContext{}).
		State(statePending).
		On(EventCapture).Target(stateCapturingState).
		On(EventFail).Target(stateFailed).Done().
		State(stateCapturingState).
		On(EventDelegate).Target(stateDelegated).
		On(EventFail).Target(stateFailed).Done().
		State(stateDelegated).
		On(EventUpToDate).Target(stateUpToDate).
		On(EventCacheHit).Target(stateCacheHit).
		On(EventExecuted).Target(stateExecuted).
		On(EventFail).Target(stateFailed).Done().
		State(stateUpToDate).Done().
		State(stateCacheHit).Done().
		State(stateExecuted).Done().
		State(stateFailed).Done().
		Build()
	if err != nil {
		return nil, err
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return &Lifecycle{interp: interp}, nil
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() Phase {
	if l.final != "" {
		return l.final
	}
	return Phase(l.interp.State().Value)
}

// IsTerminal reports whether the lifecycle reached a terminal phase.
func (l *Lifecycle) IsTerminal() bool {
	switch l.Phase() {
	case PhaseUpToDate, PhaseCacheHit, PhaseExecuted, PhaseFailed:
		return true
	default:
		return false
	}
}

// Capture moves the unit into PhaseCapturingState.
func (l *Lifecycle) Capture() {
	l.send(EventCapture)
}

// Delegate moves the unit into PhaseDelegated.
func (l *Lifecycle) Delegate() {
	l.send(EventDelegate)
}

// Fail moves the unit into PhaseFailed.
func (l *Lifecycle) Fail() {
	l.send(EventFail)
}

// Finish moves the unit into the terminal phase matching outcome and stops the
// state machine.
func (l *Lifecycle) Finish(outcome domain.Outcome) {
	if l.final != "" {
		return
	}
	if !l.IsTerminal() {
		if event, ok := outcomeEvents[outcome]; ok {
			l.send(event)
		}
	}
	l.final = l.Phase()
	l.interp.Stop()
}

func (l *Lifecycle) send(event statekit.EventType) {
	l.interp.Send(statekit.Event{Type: event})
}
