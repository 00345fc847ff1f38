package domain

import (
	"encoding/json"
	"time"
)

// BeforeExecutionState is the fingerprint of a unit of work taken before it runs.
// It is only produced for units that maintain execution history.
type BeforeExecutionState struct {
	Implementation            ImplementationSnapshot
	AdditionalImplementations []ImplementationSnapshot
	InputProperties           Properties[ValueSnapshot]
	InputFileProperties       Properties[*FileCollectionFingerprint]
	OutputFileProperties      Properties[*FileCollectionFingerprint]
}

// AfterExecutionState is the state recorded once a unit of work reached a
// successful terminal outcome. It becomes the AfterPreviousExecutionState of the
// next run.
type AfterExecutionState struct {
	ExecutionID               string
	Outcome                   Outcome
	Timestamp                 time.Time
	CacheKey                  Hash
	Implementation            ImplementationSnapshot
	AdditionalImplementations []ImplementationSnapshot
	InputProperties           Properties[ValueSnapshot]
	InputFileProperties       Properties[*FileCollectionFingerprint]
	OutputFileProperties      Properties[*FileCollectionFingerprint]
}

// AfterPreviousExecutionState is an AfterExecutionState loaded from history.
// It is read-only for the duration of an execution.
type AfterPreviousExecutionState = AfterExecutionState

// NewAfterExecutionState combines the captured inputs with the output fingerprints
// observed after the unit finished.
func NewAfterExecutionState(
	executionID string,
	outcome Outcome,
	before *BeforeExecutionState,
	outputs Properties[*FileCollectionFingerprint],
	cacheKey Hash,
	now time.Time,
) *AfterExecutionState {
	return &AfterExecutionState{
		ExecutionID:               executionID,
		Outcome:                   outcome,
		Timestamp:                 now,
		CacheKey:                  cacheKey,
		Implementation:            before.Implementation,
		AdditionalImplementations: before.AdditionalImplementations,
		InputProperties:           before.InputProperties,
		InputFileProperties:       before.InputFileProperties,
		OutputFileProperties:      outputs,
	}
}

type afterExecutionStateJSON struct {
	ExecutionID               string                                `json:"execution_id"`
	Outcome                   Outcome                               `json:"outcome"`
	Timestamp                 time.Time                             `json:"timestamp,omitzero"`
	CacheKey                  Hash                                  `json:"cache_key,omitzero"`
	Implementation            ImplementationSnapshot                `json:"implementation"`
	AdditionalImplementations []ImplementationSnapshot              `json:"additional_implementations,omitempty"`
	InputProperties           map[string]PersistedValue             `json:"input_properties,omitempty"`
	InputFileProperties       map[string]*FileCollectionFingerprint `json:"input_file_properties,omitempty"`
	OutputFileProperties      map[string]*FileCollectionFingerprint `json:"output_file_properties,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s *AfterExecutionState) MarshalJSON() ([]byte, error) {
	inputs := make(map[string]PersistedValue, s.InputProperties.Len())
	for name, v := range s.InputProperties.All() {
		inputs[name] = PersistedValue{ValueSnapshot: v}
	}
	return json.Marshal(afterExecutionStateJSON{
		ExecutionID:               s.ExecutionID,
		Outcome:                   s.Outcome,
		Timestamp:                 s.Timestamp,
		CacheKey:                  s.CacheKey,
		Implementation:            s.Implementation,
		AdditionalImplementations: s.AdditionalImplementations,
		InputProperties:           inputs,
		InputFileProperties:       s.InputFileProperties.Map(),
		OutputFileProperties:      s.OutputFileProperties.Map(),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *AfterExecutionState) UnmarshalJSON(data []byte) error {
	var dto afterExecutionStateJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	inputs := make(map[string]ValueSnapshot, len(dto.InputProperties))
	for name, v := range dto.InputProperties {
		if v.ValueSnapshot == nil {
			inputs[name] = Null
			continue
		}
		inputs[name] = v.ValueSnapshot
	}
	*s = AfterExecutionState{
		ExecutionID:               dto.ExecutionID,
		Outcome:                   dto.Outcome,
		Timestamp:                 dto.Timestamp,
		CacheKey:                  dto.CacheKey,
		Implementation:            dto.Implementation,
		AdditionalImplementations: dto.AdditionalImplementations,
		InputProperties:           NewProperties(inputs),
		InputFileProperties:       NewProperties(dto.InputFileProperties),
		OutputFileProperties:      NewProperties(dto.OutputFileProperties),
	}
	return nil
}
