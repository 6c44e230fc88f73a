package agent

import (
	"strings"

	"github.com/cinemesh/cinemesh/a2a"
)

// parseStateMarker splits a model response into the user-facing reply and
// the terminal state requested by the trailing marker line. The last line is
// always consumed as the marker; an unrecognized value maps to completed and
// ok reports false so callers can log the anomaly.
func parseStateMarker(responseText string) (reply string, state a2a.TaskState, ok bool) {
	lines := strings.Split(strings.TrimSpace(responseText), "\n")
	marker := strings.ToUpper(strings.TrimSpace(lines[len(lines)-1]))
	reply = strings.TrimSpace(strings.Join(lines[:len(lines)-1], "\n"))

	switch marker {
	case "COMPLETED":
		return reply, a2a.TaskStateCompleted, true
	case "AWAITING_USER_INPUT":
		return reply, a2a.TaskStateInputRequired, true
	default:
		return reply, a2a.TaskStateCompleted, false
	}
}
