// Package preflight runs the startup precondition checks shared by the
// run and doctor commands.
package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kenengmathias/Hunter/internal/assets"
	"github.com/Kenengmathias/Hunter/internal/config"
)

// ErrTemplateMissing doubles as the user-facing remediation message
// printed when the index template has not been generated yet.
var ErrTemplateMissing = errors.New("templates/index.html not found. Run 'hunter setup' to create it.")

// MissingKeysPrefix starts the single warning line listing unset API keys.
const MissingKeysPrefix = "missing API keys: "

const (
	StatusOK   = "ok"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// Check is one preflight finding.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// Result collects every finding plus the parsed environment when the
// config check passed.
type Result struct {
	Checks []Check
	Env    config.Env
	EnvOK  bool
}

func (r Result) Failed() bool {
	for _, check := range r.Checks {
		if check.Status == StatusFail {
			return true
		}
	}
	return false
}

// FirstFailure returns the first fatal finding. The run command prints
// its detail and exits non-zero.
func (r Result) FirstFailure() (Check, bool) {
	for _, check := range r.Checks {
		if check.Status == StatusFail {
			return check, true
		}
	}
	return Check{}, false
}

func (r Result) Warnings() []Check {
	var warns []Check
	for _, check := range r.Checks {
		if check.Status == StatusWarn {
			warns = append(warns, check)
		}
	}
	return warns
}

// Run performs the ordered startup checks under root. It never stops
// early so the doctor command can report every finding at once.
func Run(root string) Result {
	var res Result

	envPath := filepath.Join(root, config.EnvFileName)
	envFound := fileExists(envPath)
	if envFound {
		res.add("env file", StatusOK, ".env found")
	} else {
		res.add("env file", StatusFail, config.ErrEnvMissing.Error())
	}

	templatePath := filepath.Join(root, filepath.FromSlash(assets.TemplatePath))
	if fileExists(templatePath) {
		res.add("template", StatusOK, assets.TemplatePath+" found")
	} else {
		res.add("template", StatusFail, ErrTemplateMissing.Error())
	}

	env, err := config.LoadEnvLenient(envPath)
	if err != nil {
		res.add("config", StatusFail, err.Error())
		return res
	}
	res.Env = env
	res.EnvOK = true
	res.add("config", StatusOK, fmt.Sprintf("listening on %s", env.Addr()))

	if missing := env.MissingKeys(); len(missing) > 0 {
		res.add("API keys", StatusWarn, MissingKeysPrefix+strings.Join(missing, ", "))
	} else {
		res.add("API keys", StatusOK, "all API keys set")
	}

	switch n := len(env.Proxies); n {
	case 0:
		res.add("proxies", StatusOK, "no proxies configured, connecting directly")
	case 1:
		res.add("proxies", StatusOK, "1 proxy configured")
	default:
		res.add("proxies", StatusOK, fmt.Sprintf("%d proxies configured", n))
	}

	return res
}

func (r *Result) add(name, status, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, Status: status, Detail: detail})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
