package release_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/helmdeploy-controller/internal/logic/release"
)

type staticLister struct {
	releases      []string
	err           error
	gotNamespaces []string
}

func (s *staticLister) ListReleasesQuery(_ context.Context, namespace string) ([]string, error) {
	s.gotNamespaces = append(s.gotNamespaces, namespace)

	return s.releases, s.err
}

func TestInventory_List(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	t.Run("prefix filters foreign releases", func(t *testing.T) {
		t.Parallel()

		l := &staticLister{releases: []string{"sdp-abc", "other"}}
		inv := release.NewInventory(logger, l, release.NewNamer("sdp"), "sdp")

		got, err := inv.List(t.Context())
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"abc"}, got)
		require.Equal(t, []string{"sdp"}, l.gotNamespaces)
	})

	t.Run("with test prefix", func(t *testing.T) {
		t.Parallel()

		l := &staticLister{releases: []string{"test-test1", "test-test2", "test-test3", "foo", "bar"}}
		inv := release.NewInventory(logger, l, release.NewNamer("test"), "sdp")

		got, err := inv.List(t.Context())
		require.NoError(t, err)
		require.Equal(t, []string{"test1", "test2", "test3"}, got)
	})

	t.Run("no prefix returns all releases", func(t *testing.T) {
		t.Parallel()

		l := &staticLister{releases: []string{"test1", "test2", "test3"}}
		inv := release.NewInventory(logger, l, release.NewNamer(""), "sdp")

		got, err := inv.List(t.Context())
		require.NoError(t, err)
		require.Equal(t, []string{"test1", "test2", "test3"}, got)
	})

	t.Run("empty namespace", func(t *testing.T) {
		t.Parallel()

		inv := release.NewInventory(logger, &staticLister{}, release.NewNamer("sdp"), "sdp")

		got, err := inv.List(t.Context())
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("helm failure is returned", func(t *testing.T) {
		t.Parallel()

		wantErr := errors.New("boom")
		inv := release.NewInventory(logger, &staticLister{err: wantErr}, release.NewNamer("sdp"), "sdp")

		_, err := inv.List(t.Context())
		require.ErrorIs(t, err, wantErr)
	})
}
