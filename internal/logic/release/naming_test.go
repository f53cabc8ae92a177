package release_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/helmdeploy-controller/internal/logic/release"
)

func TestNamer_ReleaseName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "sdp-abc", release.NewNamer("sdp").ReleaseName("abc"))
	require.Equal(t, "abc", release.NewNamer("").ReleaseName("abc"))
}

func TestNamer_RoundTrip(t *testing.T) {
	t.Parallel()

	prefixes := []string{"", "sdp", "test", "a-b"}
	ids := []string{"abc", "proc-pb-mvp01-20200101-00000", "x", "sdp", "sdp-abc", "-"}

	for _, prefix := range prefixes {
		namer := release.NewNamer(prefix)

		for _, id := range ids {
			got, ok := namer.DeploymentID(namer.ReleaseName(id))
			require.True(t, ok, "prefix %q id %q", prefix, id)
			require.Equal(t, id, got, "prefix %q id %q", prefix, id)
		}
	}
}

type deploymentIDCase struct {
	name        string
	givePrefix  string
	giveRelease string
	wantID      string
	wantOK      bool
}

func TestNamer_DeploymentID(t *testing.T) {
	t.Parallel()

	tests := []deploymentIDCase{
		{name: "prefixed", givePrefix: "sdp", giveRelease: "sdp-abc", wantID: "abc", wantOK: true},
		{name: "foreign", givePrefix: "sdp", giveRelease: "other", wantOK: false},
		{name: "prefix without dash", givePrefix: "sdp", giveRelease: "sdpabc", wantOK: false},
		{name: "prefix only", givePrefix: "sdp", giveRelease: "sdp-", wantOK: false},
		{name: "no prefix keeps everything", givePrefix: "", giveRelease: "other", wantID: "other", wantOK: true},
		{name: "no prefix empty name", givePrefix: "", giveRelease: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, ok := release.NewNamer(tt.givePrefix).DeploymentID(tt.giveRelease)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantID, id)
		})
	}
}
