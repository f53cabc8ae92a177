package domain

import (
	"encoding/json"
	"fmt"
)

// Processing block state fields written by the pod status monitor.
const (
	StateKeyK8sStatus  = "k8s_status"
	StateKeyK8sLastLog = "k8s_lastlog"
)

// ProcessingBlockState is a processing block state record. Fields are kept as
// raw JSON so that fields owned by other controllers survive a
// read-merge-write with their exact encoding; only insignificant whitespace
// is dropped.
type ProcessingBlockState map[string]json.RawMessage

// ParseProcessingBlockState decodes a state record.
func ParseProcessingBlockState(data []byte) (ProcessingBlockState, error) {
	state := ProcessingBlockState{}

	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: decode processing block state: %w", ErrValidation, err)
	}

	return state, nil
}

// MergePodStatus sets the pod phase and last log lines, leaving every other
// field untouched.
func (s ProcessingBlockState) MergePodStatus(phase string, lastLog []string) error {
	if lastLog == nil {
		lastLog = []string{}
	}

	rawPhase, err := json.Marshal(phase)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", StateKeyK8sStatus, err)
	}

	rawLog, err := json.Marshal(lastLog)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", StateKeyK8sLastLog, err)
	}

	s[StateKeyK8sStatus] = rawPhase
	s[StateKeyK8sLastLog] = rawLog

	return nil
}

// Encode serialises the state record.
func (s ProcessingBlockState) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode processing block state: %w", err)
	}

	return data, nil
}
