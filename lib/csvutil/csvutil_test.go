package csvutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	input := "\ufeffPlayer , Activity Type (1 = game),Notes\n" +
		"Alex Morgan, 1 ,\"cut, then twist\"\n" +
		"Short Row\n"

	header, records, err := ReadWithHeader(strings.NewReader(input), "Player", "Activity Type")
	require.NoError(t, err)
	require.Equal(t, []string{"Player", "Activity Type (1 = game)", "Notes"}, header)
	require.Len(t, records, 2)

	require.Equal(t, 2, records[0].Line)
	require.Equal(t, "Alex Morgan", records[0].Get("Player"))
	require.Equal(t, "1", records[0].GetPrefix("Activity Type"))
	require.Equal(t, "cut, then twist", records[0].Get("Notes"))
	require.Equal(t, "", records[0].GetPrefix("Mechanism"))

	require.Equal(t, 3, records[1].Line)
	require.Equal(t, "Short Row", records[1].Get("Player"))
	require.Equal(t, "", records[1].Get("Notes"))
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmpty)

	_, err = Read(strings.NewReader("Player,Season\nA,2019\n"), "Player", "Team")
	require.ErrorContains(t, err, "Team")

	records, err := Read(strings.NewReader("Player\n"), "Player")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestColumn(t *testing.T) {
	header := []string{"SES Level", "SES", "Age"}

	testCases := []struct {
		prefix   string
		expected string
		ok       bool
	}{
		{prefix: "SES", expected: "SES", ok: true},
		{prefix: "SES L", expected: "SES Level", ok: true},
		{prefix: "Ag", expected: "Age", ok: true},
		{prefix: "Notes"},
	}
	for _, test := range testCases {
		col, ok := Column(header, test.prefix)
		require.Equal(t, test.ok, ok, test.prefix)
		require.Equal(t, test.expected, col, test.prefix)
	}
}
