package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhuot/go-opennms/pkg/client"
	"github.com/mhuot/go-opennms/pkg/filter"
)

const sample = `
default: prod
profiles:
  prod:
    url: https://nms.example.com/opennms
    apiVersion: 2
    timeout: 30s
    headers:
      Authorization: Basic YWRtaW46YWRtaW4=
  legacy:
    url: http://old.example.com:8980/opennms
    apiVersion: 1
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, []string{"legacy", "prod"}, f.Names())

	p, err := f.Profile("")
	require.NoError(t, err)
	assert.Equal(t, "https://nms.example.com/opennms", p.URL)
	assert.Equal(t, 30*time.Second, p.Timeout)
	assert.Equal(t, filter.V2, p.Version())

	legacy, err := f.Profile("legacy")
	require.NoError(t, err)
	assert.Equal(t, filter.V1, legacy.Version())

	_, err = f.Profile("staging")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

func TestParseSingleProfileWithoutDefault(t *testing.T) {
	f, err := Parse([]byte("profiles:\n  only:\n    url: http://localhost:8980/opennms\n"))
	require.NoError(t, err)

	p, err := f.Profile("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8980/opennms", p.URL)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing url",
			yaml:    "profiles:\n  a:\n    apiVersion: 2\n",
			wantErr: "URL",
		},
		{
			name:    "bad url",
			yaml:    "profiles:\n  a:\n    url: not a url\n",
			wantErr: "URL",
		},
		{
			name:    "bad version",
			yaml:    "profiles:\n  a:\n    url: http://x/opennms\n    apiVersion: 3\n",
			wantErr: "APIVersion",
		},
		{
			name:    "no profiles",
			yaml:    "default: a\n",
			wantErr: "Profiles",
		},
		{
			name:    "unknown default",
			yaml:    "default: b\nprofiles:\n  a:\n    url: http://x/opennms\n",
			wantErr: "unknown profile",
		},
		{
			name:    "unknown field",
			yaml:    "profiles:\n  a:\n    url: http://x/opennms\n    password: secret\n",
			wantErr: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Profiles, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestClientOptions(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)
	p, err := f.Profile("legacy")
	require.NoError(t, err)

	c, err := client.New(p.ClientOptions()...)
	require.NoError(t, err)
	assert.Equal(t, filter.V1, c.Version())
	assert.Equal(t, "old.example.com:8980", c.BaseURL().Host)
}
