package deployer

// Outcome is the result of a create call.
type Outcome int

const (
	// OutcomeFailed means the release was not created; the id stays pending.
	OutcomeFailed Outcome = iota

	// OutcomeCreated means helm installed the release.
	OutcomeCreated

	// OutcomePurged means an orphaned release with the same name was removed.
	// The id stays pending and should be re-evaluated without waiting a full cycle.
	OutcomePurged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomePurged:
		return "purged"
	default:
		return "failed"
	}
}
