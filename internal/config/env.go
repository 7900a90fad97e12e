package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/Kenengmathias/Hunter/internal/network"
	"github.com/Kenengmathias/Hunter/internal/source"
)

const (
	EnvFileName = ".env"

	DefaultHost = "0.0.0.0"
	DefaultPort = 8000
)

// ErrEnvMissing doubles as the user-facing remediation message printed
// when the server is started without an environment file.
var ErrEnvMissing = errors.New(".env not found. Copy .env.example to .env and add your API keys.")

// Env holds the server-side configuration read from the .env file,
// with real environment variables taking precedence.
type Env struct {
	Host  string
	Port  int
	Debug bool

	JoobleKey    string
	AdzunaAppID  string
	AdzunaAppKey string
	JSearchKey   string

	Proxies []string
}

// LoadEnv reads the env file at path (default .env). A missing file is
// an error; the server refuses to start half-configured.
func LoadEnv(path string) (Env, error) {
	if path == "" {
		path = EnvFileName
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Env{}, ErrEnvMissing
		}
		return Env{}, err
	}
	return loadEnv(path)
}

// LoadEnvLenient is LoadEnv for CLI commands: a missing file just means
// keys come from the process environment alone.
func LoadEnvLenient(path string) (Env, error) {
	if path == "" {
		path = EnvFileName
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return loadEnv("")
		}
		return Env{}, err
	}
	return loadEnv(path)
}

func loadEnv(path string) (Env, error) {
	v := viper.New()
	v.SetDefault("HOST", DefaultHost)
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("DEBUG", false)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return Env{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	env := Env{
		Host:         v.GetString("HOST"),
		Port:         v.GetInt("PORT"),
		Debug:        v.GetBool("DEBUG"),
		JoobleKey:    v.GetString("JOOBLE_API_KEY"),
		AdzunaAppID:  v.GetString("ADZUNA_APP_ID"),
		AdzunaAppKey: v.GetString("ADZUNA_APP_KEY"),
		JSearchKey:   v.GetString("JSEARCH_API_KEY"),
		Proxies:      splitCSV(v.GetString("PROXY_LIST")),
	}

	if err := env.Validate(); err != nil {
		return Env{}, err
	}
	return env, nil
}

func (e Env) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Host, validation.Required),
		validation.Field(&e.Port, validation.Min(1), validation.Max(65535)),
		validation.Field(&e.Proxies, validation.Each(validation.By(validProxyEntry))),
	)
}

func validProxyEntry(value interface{}) error {
	entry, _ := value.(string)
	_, err := network.ParseProxy(entry)
	return err
}

// MissingKeys reports which of the four API keys are unset, in a fixed
// order so warnings stay stable.
func (e Env) MissingKeys() []string {
	var missing []string
	if e.JoobleKey == "" {
		missing = append(missing, "JOOBLE_API_KEY")
	}
	if e.AdzunaAppID == "" {
		missing = append(missing, "ADZUNA_APP_ID")
	}
	if e.AdzunaAppKey == "" {
		missing = append(missing, "ADZUNA_APP_KEY")
	}
	if e.JSearchKey == "" {
		missing = append(missing, "JSEARCH_API_KEY")
	}
	return missing
}

func (e Env) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// Credentials adapts the env keys for the source registry.
func (e Env) Credentials() source.Credentials {
	return source.Credentials{
		JoobleKey:    e.JoobleKey,
		AdzunaAppID:  e.AdzunaAppID,
		AdzunaAppKey: e.AdzunaAppKey,
		JSearchKey:   e.JSearchKey,
	}
}
