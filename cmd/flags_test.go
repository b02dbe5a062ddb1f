package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimit(t *testing.T) {
	limit, err := parseLimit("5")
	require.NoError(t, err)
	require.NotNil(t, limit)
	assert.Equal(t, 5, *limit)

	limit, err = parseLimit("0")
	require.NoError(t, err)
	require.NotNil(t, limit)
	assert.Equal(t, 0, *limit)

	for _, raw := range []string{"all", "ALL", "none", " None "} {
		limit, err = parseLimit(raw)
		require.NoError(t, err, "value %q", raw)
		assert.Nil(t, limit, "value %q", raw)
	}

	_, err = parseLimit("-1")
	assert.Error(t, err)
	_, err = parseLimit("many")
	assert.Error(t, err)
}

func TestQuantityArgTracksFlagChange(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var qnt float64
	cmd.Flags().Float64Var(&qnt, "qnt", 1, "")

	// Default value, flag never set: no explicit quantity.
	assert.Nil(t, quantityArg(cmd, qnt))

	require.NoError(t, cmd.Flags().Set("qnt", "1"))
	explicit := quantityArg(cmd, qnt)
	require.NotNil(t, explicit)
	assert.Equal(t, "1", explicit.String())
}

func TestResolveFormat(t *testing.T) {
	cases := []struct {
		flag, out, want string
	}{
		{"", "prices.csv", "csv"},
		{"", "prices.XLSX", "xlsx"},
		{"", "prices", "csv"},
		{"xlsx", "prices.csv", "xlsx"},
		{" CSV ", "whatever", "csv"},
	}
	for _, tc := range cases {
		format, err := resolveFormat(tc.flag, tc.out)
		require.NoError(t, err, "flag=%q out=%q", tc.flag, tc.out)
		assert.Equal(t, tc.want, format, "flag=%q out=%q", tc.flag, tc.out)
	}

	_, err := resolveFormat("pdf", "prices.pdf")
	assert.Error(t, err)
}
