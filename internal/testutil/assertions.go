package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertRanBefore checks that task first finished before task second
// started.
func AssertRanBefore(t *testing.T, s *Sleeper, first, second string) {
	t.Helper()

	a, ok := s.Record(first)
	require.True(t, ok, "task '%s' never ran", first)
	b, ok := s.Record(second)
	require.True(t, ok, "task '%s' never ran", second)

	require.False(t, b.Start.Before(a.End),
		"task '%s' started at %s before '%s' finished at %s", second, b.Start, first, a.End)
}

// AssertOverlapped checks that the two tasks were running at the same time.
func AssertOverlapped(t *testing.T, s *Sleeper, first, second string) {
	t.Helper()

	a, ok := s.Record(first)
	require.True(t, ok, "task '%s' never ran", first)
	b, ok := s.Record(second)
	require.True(t, ok, "task '%s' never ran", second)

	require.True(t, a.Start.Before(b.End) && b.Start.Before(a.End),
		"tasks '%s' and '%s' did not overlap", first, second)
}
