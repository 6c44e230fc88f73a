package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinemesh/cinemesh/a2a"
)

func TestParseStateMarker(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantReply string
		wantState a2a.TaskState
		wantOK    bool
	}{
		{
			name:      "completed marker",
			input:     "Inception is a 2010 film by Christopher Nolan.\nCOMPLETED",
			wantReply: "Inception is a 2010 film by Christopher Nolan.",
			wantState: a2a.TaskStateCompleted,
			wantOK:    true,
		},
		{
			name:      "input required marker",
			input:     "Which movie do you mean?\nAWAITING_USER_INPUT",
			wantReply: "Which movie do you mean?",
			wantState: a2a.TaskStateInputRequired,
			wantOK:    true,
		},
		{
			name:      "marker is case insensitive",
			input:     "Done.\ncompleted",
			wantReply: "Done.",
			wantState: a2a.TaskStateCompleted,
			wantOK:    true,
		},
		{
			name:      "marker line may carry surrounding whitespace",
			input:     "Done.\n  COMPLETED  ",
			wantReply: "Done.",
			wantState: a2a.TaskStateCompleted,
			wantOK:    true,
		},
		{
			name:      "unrecognized marker still strips the last line",
			input:     "Here is your answer.\nMore detail here.",
			wantReply: "Here is your answer.",
			wantState: a2a.TaskStateCompleted,
			wantOK:    false,
		},
		{
			name:      "single line without marker yields empty reply",
			input:     "Just an answer with no marker",
			wantReply: "",
			wantState: a2a.TaskStateCompleted,
			wantOK:    false,
		},
		{
			name:      "multi line reply preserved",
			input:     "Line one.\nLine two.\nCOMPLETED",
			wantReply: "Line one.\nLine two.",
			wantState: a2a.TaskStateCompleted,
			wantOK:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, state, ok := parseStateMarker(tt.input)
			assert.Equal(t, tt.wantReply, reply)
			assert.Equal(t, tt.wantState, state)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
