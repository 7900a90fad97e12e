// Package assets carries the canonical copies of the files hunter
// setup materializes: the index template, the static bundle, and the
// .env example.
package assets

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed files
var files embed.FS

// Dirs is the runtime layout setup creates under the project root.
var Dirs = []string{
	"templates",
	"static/css",
	"static/js",
	"static/images",
	"logs",
}

// Destination paths relative to the project root.
const (
	TemplatePath   = "templates/index.html"
	StylePath      = "static/css/style.css"
	ScriptPath     = "static/js/main.js"
	FaviconPath    = "static/images/favicon.svg"
	EnvPath        = ".env"
	EnvExamplePath = ".env.example"
)

var fileSources = map[string]string{
	TemplatePath:   "files/index.html",
	StylePath:      "files/style.css",
	ScriptPath:     "files/main.js",
	FaviconPath:    "files/favicon.svg",
	EnvExamplePath: "files/env.example",
}

// Template returns the embedded index template.
func Template() ([]byte, error) {
	return files.ReadFile("files/index.html")
}

// EnsureDirs creates the runtime directory layout.
func EnsureDirs(root string) error {
	for _, dir := range Dirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// Write copies one embedded asset to its destination. Existing files
// are left alone unless force is set. Reports whether it wrote.
func Write(root string, dest string, force bool) (bool, error) {
	src, ok := fileSources[dest]
	if !ok {
		return false, fmt.Errorf("unknown asset %q", dest)
	}

	target := filepath.Join(root, filepath.FromSlash(dest))
	if !force {
		if _, err := os.Stat(target); err == nil {
			return false, nil
		}
	}

	data, err := files.ReadFile(src)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", dest, err)
	}
	return true, nil
}

// WriteStatic writes the stylesheet, script, and favicon, returning
// the destinations it actually wrote.
func WriteStatic(root string, force bool) ([]string, error) {
	var written []string
	for _, dest := range []string{StylePath, ScriptPath, FaviconPath} {
		wrote, err := Write(root, dest, force)
		if err != nil {
			return written, err
		}
		if wrote {
			written = append(written, dest)
		}
	}
	return written, nil
}

func WriteTemplate(root string, force bool) (bool, error) {
	return Write(root, TemplatePath, force)
}

func WriteEnvExample(root string, force bool) (bool, error) {
	return Write(root, EnvExamplePath, force)
}

// SeedEnv creates .env from the example when none exists yet. An
// existing .env is never touched: it holds the user's keys.
func SeedEnv(root string) (bool, error) {
	target := filepath.Join(root, EnvPath)
	if _, err := os.Stat(target); err == nil {
		return false, nil
	}

	data, err := os.ReadFile(filepath.Join(root, EnvExamplePath))
	if err != nil {
		data, err = files.ReadFile("files/env.example")
		if err != nil {
			return false, err
		}
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return false, fmt.Errorf("write %s: %w", EnvPath, err)
	}
	return true, nil
}
