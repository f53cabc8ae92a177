package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/helmdeploy-controller/internal/domain"
)

type parseDeploymentCase struct {
	name       string
	giveData   string
	wantErr    bool
	wantChart  string
	wantValues bool
}

func TestParseDeployment(t *testing.T) {
	t.Parallel()

	tests := []parseDeploymentCase{
		{
			name:      "chart without values",
			giveData:  `{"id":"proc-01","kind":"helm","args":{"chart":"workflow"}}`,
			wantChart: "workflow",
		},
		{
			name:       "chart with nested values",
			giveData:   `{"id":"proc-01","kind":"helm","args":{"chart":"dask/dask","values":{"worker":{"replicas":2}}}}`,
			wantChart:  "dask/dask",
			wantValues: true,
		},
		{
			name:       "empty values are still present",
			giveData:   `{"id":"proc-01","kind":"helm","args":{"chart":"workflow","values":{}}}`,
			wantChart:  "workflow",
			wantValues: true,
		},
		{
			name:     "missing chart",
			giveData: `{"id":"proc-01","kind":"helm","args":{}}`,
			wantErr:  true,
		},
		{
			name:     "missing kind",
			giveData: `{"id":"proc-01","args":{"chart":"workflow"}}`,
			wantErr:  true,
		},
		{
			name:     "invalid id characters",
			giveData: `{"id":"proc_01!","kind":"helm","args":{"chart":"workflow"}}`,
			wantErr:  true,
		},
		{
			name:     "chart of wrong type",
			giveData: `{"id":"proc-01","kind":"helm","args":{"chart":42}}`,
			wantErr:  true,
		},
		{
			name:     "not json",
			giveData: `chart: workflow`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := domain.ParseDeployment([]byte(tt.giveData))
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrValidation)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantChart, got.Args.Chart)
			require.Equal(t, tt.wantValues, got.Args.Values != nil)
			require.True(t, got.IsHelm())
		})
	}
}

func TestDeployment_IsHelm(t *testing.T) {
	t.Parallel()

	dpl := &domain.Deployment{ID: "proc-01", Kind: "slurm", Args: domain.DeploymentArgs{Chart: "x"}}
	require.False(t, dpl.IsHelm())
	require.NoError(t, dpl.Validate())
}

func TestParseDeployment_KeepsIntegerValues(t *testing.T) {
	t.Parallel()

	got, err := domain.ParseDeployment([]byte(
		`{"id":"proc-01","kind":"helm","args":{"chart":"workflow",` +
			`"values":{"replicas":1000000,"ratio":0.5,"ports":[8080,1e3],"worker":{"memory":4294967296}}}}`,
	))
	require.NoError(t, err)

	require.Equal(t, map[string]any{
		"replicas": int64(1000000),
		"ratio":    0.5,
		"ports":    []any{int64(8080), float64(1000)},
		"worker":   map[string]any{"memory": int64(4294967296)},
	}, got.Args.Values)
}
