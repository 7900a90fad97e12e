package assets

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readEmbedded(t *testing.T, name string) string {
	t.Helper()
	data, err := files.ReadFile("files/" + name)
	if err != nil {
		t.Fatalf("read embedded %s: %v", name, err)
	}
	return string(data)
}

func TestStylesheetCoversSourceBadges(t *testing.T) {
	css := readEmbedded(t, "style.css")

	for _, class := range []string{
		".source-jooble",
		".source-adzuna",
		".source-jsearch",
		".source-indeed",
		".source-jobberman",
	} {
		if !strings.Contains(css, class) {
			t.Errorf("stylesheet missing badge class %q", class)
		}
	}
	if !strings.Contains(css, "@keyframes pulse") {
		t.Error("stylesheet missing pulse animation")
	}
	if !strings.Contains(css, "@media (max-width: 768px)") {
		t.Error("stylesheet missing mobile breakpoint")
	}
}

func TestScriptCoversFormBehavior(t *testing.T) {
	js := readEmbedded(t, "main.js")

	if !strings.Contains(js, "length < 2") || !strings.Contains(js, "alert(") {
		t.Error("script missing short-title submit guard")
	}
	if !strings.Contains(js, "event.ctrlKey || event.metaKey") || !strings.Contains(js, "'k'") {
		t.Error("script missing keyboard shortcut binding")
	}
	if strings.Count(js, "console.log") < 2 {
		t.Error("script missing analytics stubs")
	}
}

func TestTemplateParses(t *testing.T) {
	raw, err := Template()
	if err != nil {
		t.Fatalf("Template() error: %v", err)
	}

	funcs := template.FuncMap{
		"sourceClass": func(string) string { return "" },
	}
	if _, err := template.New("index").Funcs(funcs).Parse(string(raw)); err != nil {
		t.Fatalf("template does not parse: %v", err)
	}

	page := string(raw)
	for _, field := range []string{
		`name="job_title"`,
		`name="location"`,
		`name="job_type"`,
		`name="max_results"`,
		`name="include_local"`,
	} {
		if !strings.Contains(page, field) {
			t.Errorf("template missing form field %s", field)
		}
	}
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()

	if err := EnsureDirs(root); err != nil {
		t.Fatalf("EnsureDirs error: %v", err)
	}
	for _, dir := range Dirs {
		info, err := os.Stat(filepath.Join(root, dir))
		if err != nil {
			t.Fatalf("missing dir %s: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestWriteSkipsExistingUnlessForced(t *testing.T) {
	root := t.TempDir()

	wrote, err := Write(root, StylePath, false)
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !wrote {
		t.Fatal("expected first write to happen")
	}

	target := filepath.Join(root, filepath.FromSlash(StylePath))
	if err := os.WriteFile(target, []byte("/* edited */"), 0o644); err != nil {
		t.Fatal(err)
	}

	wrote, err = Write(root, StylePath, false)
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if wrote {
		t.Error("expected existing file to be kept")
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "/* edited */" {
		t.Errorf("existing file overwritten: %q", data)
	}

	wrote, err = Write(root, StylePath, true)
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !wrote {
		t.Error("expected forced write to happen")
	}
	data, err = os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "/* edited */" {
		t.Error("forced write kept old content")
	}
}

func TestWriteUnknownAsset(t *testing.T) {
	if _, err := Write(t.TempDir(), "static/other.bin", false); err == nil {
		t.Fatal("expected error for unknown asset")
	}
}

func TestWriteStatic(t *testing.T) {
	root := t.TempDir()

	written, err := WriteStatic(root, false)
	if err != nil {
		t.Fatalf("WriteStatic error: %v", err)
	}
	if got, want := len(written), 3; got != want {
		t.Fatalf("written count = %d, want %d", got, want)
	}
	for _, dest := range written {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(dest))); err != nil {
			t.Errorf("missing %s: %v", dest, err)
		}
	}

	written, err = WriteStatic(root, false)
	if err != nil {
		t.Fatalf("WriteStatic error: %v", err)
	}
	if len(written) != 0 {
		t.Errorf("second run rewrote %v", written)
	}
}

func TestSeedEnvNeverOverwrites(t *testing.T) {
	root := t.TempDir()

	seeded, err := SeedEnv(root)
	if err != nil {
		t.Fatalf("SeedEnv error: %v", err)
	}
	if !seeded {
		t.Fatal("expected .env to be created")
	}

	target := filepath.Join(root, EnvPath)
	if err := os.WriteFile(target, []byte("JOOBLE_API_KEY=secret\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	seeded, err = SeedEnv(root)
	if err != nil {
		t.Fatalf("SeedEnv error: %v", err)
	}
	if seeded {
		t.Error("expected existing .env to be kept")
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "JOOBLE_API_KEY=secret\n" {
		t.Errorf(".env overwritten: %q", data)
	}
}

func TestSeedEnvPrefersDiskExample(t *testing.T) {
	root := t.TempDir()
	custom := "PORT=9000\n"
	if err := os.WriteFile(filepath.Join(root, EnvExamplePath), []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := SeedEnv(root); err != nil {
		t.Fatalf("SeedEnv error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, EnvPath))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != custom {
		t.Errorf(".env = %q, want copy of local example", data)
	}
}
