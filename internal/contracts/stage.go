package contracts

// Stage represents a pipeline stage in a strategy run.
//
// Pipeline flow:
//
//	FETCH_UNIVERSE → FILTER → RANK → REGIME_GATE → SIZE → SUBMIT → DONE
//
// Any stage that produces an empty result terminates the run early with
// zero orders; the run summary records the stage at which the list emptied.
type Stage string

const (
	// StageFetch builds the raw candidate list from external data
	StageFetch Stage = "FETCH_UNIVERSE"

	// StageFilter applies the strategy's filter predicates
	StageFilter Stage = "FILTER"

	// StageRank sorts qualified candidates and applies the top-N cap
	StageRank Stage = "RANK"

	// StageGate filters by macro regime and growth profile
	StageGate Stage = "REGIME_GATE"

	// StageSize computes per-candidate order quantities
	StageSize Stage = "SIZE"

	// StageSubmit places orders with the brokerage
	StageSubmit Stage = "SUBMIT"

	// StageDone marks a completed run
	StageDone Stage = "DONE"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// AllStages returns the pipeline stages in execution order
func AllStages() []Stage {
	return []Stage{
		StageFetch,
		StageFilter,
		StageRank,
		StageGate,
		StageSize,
		StageSubmit,
		StageDone,
	}
}
