package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNameParts(t *testing.T) {
	testCases := []struct {
		name        string
		first       string
		lastInitial string
	}{
		{name: "Alex Morgan", first: "Alex", lastInitial: "M"},
		{name: "  Ana Maria  Crnogorčević ", first: "Ana", lastInitial: "M"},
		{name: "Marta", first: "Marta"},
		{name: "", first: ""},
	}

	for _, test := range testCases {
		first, last := NameParts(test.name)
		require.Equal(t, test.first, first, test.name)
		require.Equal(t, test.lastInitial, last, test.name)
	}
}

func TestNormalizeAndSlug(t *testing.T) {
	require.Equal(t, "megan rapinoe", NormalizeName("  Megan\t RAPINOE\n"))
	require.Equal(t, "Megan-Rapinoe", Slug(" Megan  Rapinoe "))
	require.True(t, IsNumeric("2019"))
	require.False(t, IsNumeric("2019-2020"))
	require.False(t, IsNumeric(""))
}
