package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for raw, want := range map[string]time.Time{
		"2021-03-04":           time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC),
		" 2021-03 ":            time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
		"2021-03-04T10:00:00Z": time.Date(2021, 3, 4, 10, 0, 0, 0, time.UTC),
	} {
		got, err := Parse(raw)
		require.NoError(t, err, raw)
		require.True(t, want.Equal(got), raw)
	}

	_, err := Parse("yesterday")
	require.Error(t, err)
}

func TestParseOptional(t *testing.T) {
	got, err := ParseOptional(nil)
	require.NoError(t, err)
	require.Nil(t, got)

	blank := "  "
	got, err = ParseOptional(&blank)
	require.NoError(t, err)
	require.Nil(t, got)

	bad := "13/2020"
	_, err = ParseOptional(&bad)
	require.Error(t, err)
}
