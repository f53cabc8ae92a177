package podmonitor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type lastLinesCase struct {
	name    string
	giveLog string
	want    []string
}

func TestLastLines(t *testing.T) {
	t.Parallel()

	tests := []lastLinesCase{
		{
			name:    "empty log",
			giveLog: "",
			want:    []string{},
		},
		{
			name:    "single partial line",
			giveLog: "starting",
			want:    []string{},
		},
		{
			name:    "two complete lines",
			giveLog: "one\ntwo\n",
			want:    []string{"one", "two"},
		},
		{
			name:    "keeps the last three complete lines",
			giveLog: "one\ntwo\nthree\nfour\n",
			want:    []string{"two", "three", "four"},
		},
		{
			name:    "drops the trailing partial line",
			giveLog: "one\ntwo\nthree\nfour\npartial",
			want:    []string{"two", "three", "four"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, lastLines(tt.giveLog))
		})
	}
}
