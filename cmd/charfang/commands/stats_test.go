package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeDuration(t *testing.T) {
	t.Parallel()

	before := time.Now().Add(-24 * time.Hour)

	parsed, err := parseTime("24h")
	require.NoError(t, err)
	assert.WithinDuration(t, before, parsed, time.Minute)
}

func TestParseTimeRFC3339(t *testing.T) {
	t.Parallel()

	parsed, err := parseTime("2024-06-01T12:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC), parsed)
}

func TestParseTimeDateOnly(t *testing.T) {
	t.Parallel()

	parsed, err := parseTime("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), parsed)
}

func TestParseTimeInvalid(t *testing.T) {
	t.Parallel()

	_, err := parseTime("yesterday-ish")
	require.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeWindow(t *testing.T) {
	t.Parallel()

	sc := &StatsCommand{since: "2024-01-01", until: "2024-06-01"}

	window, err := sc.timeWindow()
	require.NoError(t, err)
	require.NotNil(t, window.since)
	require.NotNil(t, window.until)
	assert.True(t, window.since.Before(*window.until))

	sc = &StatsCommand{}
	window, err = sc.timeWindow()
	require.NoError(t, err)
	assert.Nil(t, window.since)
	assert.Nil(t, window.until)

	sc = &StatsCommand{since: "nope"}
	_, err = sc.timeWindow()
	require.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestStatsCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := NewStatsCommand()

	for _, name := range []string{
		"config", "group-by", "include-merges", "limit", "since", "until",
		"branch", "languages", "format", "output", "no-cache", "progress",
		"log-json", "metrics-listen", "verbose", "quiet",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %q", name)
	}
}

func TestStatsCommandRejectsExtraArgs(t *testing.T) {
	t.Parallel()

	cmd := NewStatsCommand()
	cmd.SetArgs([]string{"repo-a", "repo-b"})

	err := cmd.Execute()
	require.Error(t, err)
}
