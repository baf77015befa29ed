package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.yaml", "-a", "localhost"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.yaml"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-a", "localhost"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "order preserved",
			args:    []string{"-d", "postgres://x", "-redis", "redis://r", "-l", "debug"},
			allowed: []string{"-d", "-l"},
			want:    []string{"-d", "postgres://x", "-l", "debug"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "missing value at end",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next token is a flag",
			args:    []string{"-c", "-notvalue"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "equals value may look like a flag",
			args:    []string{"-config=--weird.json"},
			allowed: []string{"-config"},
			want:    []string{"-config=--weird.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			assert.Equal(t, tt.want, got)
			assert.NotNil(t, got)
		})
	}
}

func TestConfigFileFromArgs(t *testing.T) {
	assert.Equal(t, "a.yaml", ConfigFileFromArgs([]string{"-a", ":1", "-c", "a.yaml"}))
	assert.Equal(t, "b.json", ConfigFileFromArgs([]string{"-config=b.json"}))
	assert.Equal(t, "", ConfigFileFromArgs([]string{"-d", "dsn"}))
}

func TestConfigFileFlag_ReadsOSArgs(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"server", "-s", "secret", "-c", "server.yaml"}
	assert.Equal(t, "server.yaml", ConfigFileFlag())
}
