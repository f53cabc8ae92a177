package podmonitor

import "strings"

const (
	podNamePrefixLen = len("proc-")
	workflowMarker   = "-workflow"
)

// ProcessingBlockID derives the processing block id from a workflow pod name
// of the form "proc-<pb id>-workflow-...".
func ProcessingBlockID(podName string) (string, bool) {
	idx := strings.Index(podName, workflowMarker)
	if idx <= podNamePrefixLen {
		return "", false
	}

	return podName[podNamePrefixLen:idx], true
}

// lastLines returns the last three complete lines of a log. The text after
// the final newline is a partial line and is left out.
func lastLines(log string) []string {
	lines := strings.Split(log, "\n")

	end := len(lines) - 1
	start := max(end-3, 0)

	return lines[start:end]
}
