package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", "http://10.0.0.1:8080", "-d", "cache.db", "-i", "10", "-t", "30"}, expectPanic: false,
			expected: &Config{ServerBaseURL: "http://10.0.0.1:8080", DatabasePath: "cache.db", OnlineCheckInterval: 10 * time.Second, PullTimeout: 30 * time.Second}},
		{name: "Test2 incorrect check interval", args: []string{"cmd", "-a", "http://10.0.0.1:8080", "-i", "abc"}, expectPanic: true, expected: &Config{}},
		{name: "Test3 incorrect pull timeout", args: []string{"cmd", "-t", "soon"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
