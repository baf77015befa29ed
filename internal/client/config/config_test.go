package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "client.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("server_endpoint_addr: chat.example:443\nonline_check_interval: 10s\ncache_dsn: /tmp/chat.db\n"), 0o600))
	jsonPath := filepath.Join(dir, "client.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"request_timeout":"2s"}`), 0o600))

	env := map[string]string{"GOPHCHAT_SERVER_ADDR": "env:50051", "GOPHCHAT_CLIENT_TIMEOUT": "4s"}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "env",
			want: Config{ServerEndpointAddr: "env:50051", OnlineCheckInterval: 3 * time.Second, RequestTimeout: 4 * time.Second, CacheDSN: "gophchat_cache.db"},
		},
		{
			name: "yaml file",
			args: []string{"-c", yamlPath},
			want: Config{ServerEndpointAddr: "chat.example:443", OnlineCheckInterval: 10 * time.Second, RequestTimeout: 4 * time.Second, CacheDSN: "/tmp/chat.db"},
		},
		{
			name: "json file and flags",
			args: []string{"-config", jsonPath, "-a", "flag:1", "-i", "7", "-db", ""},
			want: Config{ServerEndpointAddr: "flag:1", OnlineCheckInterval: 7 * time.Second, RequestTimeout: 2 * time.Second},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := load(tt.args, lookup)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	got, err := load(nil, func(string) (string, bool) { return "", false })
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:50051", got.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, got.OnlineCheckInterval)
	assert.Equal(t, 10*time.Second, got.RequestTimeout)
	assert.Equal(t, "gophchat_cache.db", got.CacheDSN)
}

func TestLoad_Errors(t *testing.T) {
	none := func(string) (string, bool) { return "", false }

	_, err := load([]string{"-i", "often"}, none)
	assert.Error(t, err)

	_, err = load([]string{"-c", filepath.Join(t.TempDir(), "missing.yaml")}, none)
	assert.Error(t, err)

	_, err = load(nil, func(k string) (string, bool) { return "forever", k == "GOPHCHAT_ONLINE_CHECK_INTERVAL" })
	assert.Error(t, err)
}
