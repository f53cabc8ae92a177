package podmonitor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/helmdeploy-controller/internal/logic/podmonitor"
)

type processingBlockIDCase struct {
	name    string
	givePod string
	wantID  string
	wantOK  bool
}

func TestProcessingBlockID(t *testing.T) {
	t.Parallel()

	tests := []processingBlockIDCase{
		{
			name:    "workflow pod",
			givePod: "proc-pb-20240101-0001-workflow-7c9d5",
			wantID:  "pb-20240101-0001",
			wantOK:  true,
		},
		{
			name:    "marker missing",
			givePod: "dask-scheduler-5f7d8",
		},
		{
			name:    "empty id",
			givePod: "proc--workflow-x",
		},
		{
			name:    "marker inside prefix",
			givePod: "a-workflow-x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotID, gotOK := podmonitor.ProcessingBlockID(tt.givePod)
			require.Equal(t, tt.wantOK, gotOK)
			require.Equal(t, tt.wantID, gotID)
		})
	}
}
