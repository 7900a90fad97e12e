package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeEnvFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestLoadEnvMissingFile(t *testing.T) {
	_, err := LoadEnv(filepath.Join(t.TempDir(), ".env"))
	if !errors.Is(err, ErrEnvMissing) {
		t.Fatalf("LoadEnv() error = %v, want ErrEnvMissing", err)
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	path := writeEnvFile(t, "JOOBLE_API_KEY=abc\n")

	env, err := LoadEnv(path)
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if env.Host != DefaultHost {
		t.Fatalf("Host = %q, want %q", env.Host, DefaultHost)
	}
	if env.Port != DefaultPort {
		t.Fatalf("Port = %d, want %d", env.Port, DefaultPort)
	}
	if env.Debug {
		t.Fatalf("Debug should default to false")
	}
	if env.Addr() != "0.0.0.0:8000" {
		t.Fatalf("Addr() = %q", env.Addr())
	}
}

func TestLoadEnvReadsAllKeys(t *testing.T) {
	path := writeEnvFile(t, `JOOBLE_API_KEY=jk
ADZUNA_APP_ID=id
ADZUNA_APP_KEY=ak
JSEARCH_API_KEY=js
PROXY_LIST=10.0.0.1:8080,10.0.0.2:8080:user:pass
HOST=127.0.0.1
PORT=9000
DEBUG=True
`)

	env, err := LoadEnv(path)
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if env.JoobleKey != "jk" || env.AdzunaAppID != "id" || env.AdzunaAppKey != "ak" || env.JSearchKey != "js" {
		t.Fatalf("unexpected keys: %+v", env)
	}
	if !env.Debug {
		t.Fatalf("Debug should parse True")
	}
	if env.Port != 9000 || env.Host != "127.0.0.1" {
		t.Fatalf("host/port = %s:%d", env.Host, env.Port)
	}

	wantProxies := []string{"10.0.0.1:8080", "10.0.0.2:8080:user:pass"}
	if !reflect.DeepEqual(env.Proxies, wantProxies) {
		t.Fatalf("Proxies = %#v, want %#v", env.Proxies, wantProxies)
	}

	if missing := env.MissingKeys(); len(missing) != 0 {
		t.Fatalf("MissingKeys() = %v, want none", missing)
	}
}

func TestMissingKeysListsExactlyTheOmitted(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		want     []string
	}{
		{
			name:     "only jooble missing",
			contents: "ADZUNA_APP_ID=id\nADZUNA_APP_KEY=ak\nJSEARCH_API_KEY=js\n",
			want:     []string{"JOOBLE_API_KEY"},
		},
		{
			name:     "adzuna pair missing",
			contents: "JOOBLE_API_KEY=jk\nJSEARCH_API_KEY=js\n",
			want:     []string{"ADZUNA_APP_ID", "ADZUNA_APP_KEY"},
		},
		{
			name:     "everything missing",
			contents: "HOST=0.0.0.0\n",
			want:     []string{"JOOBLE_API_KEY", "ADZUNA_APP_ID", "ADZUNA_APP_KEY", "JSEARCH_API_KEY"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeEnvFile(t, tc.contents)
			env, err := LoadEnv(path)
			if err != nil {
				t.Fatalf("LoadEnv() error = %v", err)
			}
			got := env.MissingKeys()
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("MissingKeys() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLoadEnvRejectsBadPort(t *testing.T) {
	path := writeEnvFile(t, "PORT=70000\n")
	if _, err := LoadEnv(path); err == nil {
		t.Fatalf("expected validation error for out-of-range port")
	}
}

func TestLoadEnvRejectsBadProxyEntry(t *testing.T) {
	path := writeEnvFile(t, "PROXY_LIST=justhost\n")
	if _, err := LoadEnv(path); err == nil {
		t.Fatalf("expected validation error for malformed proxy entry")
	}
}

func TestLoadEnvLenientFallsBackToProcessEnv(t *testing.T) {
	t.Setenv("JOOBLE_API_KEY", "from-process")

	env, err := LoadEnvLenient(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("LoadEnvLenient() error = %v", err)
	}
	if env.JoobleKey != "from-process" {
		t.Fatalf("JoobleKey = %q, want process value", env.JoobleKey)
	}
	if env.Port != DefaultPort {
		t.Fatalf("Port = %d, want default", env.Port)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("JOOBLE_API_KEY", "winner")
	path := writeEnvFile(t, "JOOBLE_API_KEY=loser\n")

	env, err := LoadEnv(path)
	if err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if env.JoobleKey != "winner" {
		t.Fatalf("JoobleKey = %q, process env should win", env.JoobleKey)
	}
}
