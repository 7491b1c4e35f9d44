package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("TAXEASE_TEST_DIR", "/data/taxease")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty path untouched", in: "", want: ""},
		{name: "absolute path untouched", in: "/var/lib/taxease.db", want: "/var/lib/taxease.db"},
		{name: "bare tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/receipts/out.xlsx", want: filepath.Join(home, "receipts/out.xlsx")},
		{name: "environment variable", in: "$TAXEASE_TEST_DIR/taxease.db", want: "/data/taxease/taxease.db"},
		{name: "tilde mid-path untouched", in: "/tmp/~backup", want: "/tmp/~backup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
