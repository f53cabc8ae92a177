package podmonitor

// State is the lifecycle state of the pod status monitor.
type State string

const (
	// StateNotRunning is the state before Start, or when the monitor is disabled.
	StateNotRunning State = "not-running"

	// StateRunning is the state while pod events are being consumed.
	StateRunning State = "running"

	// StateStopped is the final state after the event stream ended.
	StateStopped State = "stopped"
)

// PodEvent is a pod lifecycle event.
type PodEvent struct {
	Name  string
	Phase string
}
