package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("folio %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	cfgFile = filepath.Join(dir, "folio.yml")
	if err := os.WriteFile(cfgFile, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

const samplePosts = `[
  {"id": 1, "title": "One", "category": "tutorial", "date": "2024-01-01"},
  {"id": 2, "title": "Two", "category": "notes", "date": "2024-01-02"},
  {"id": 3, "title": "Three", "category": "tutorial", "date": "2024-01-03"}
]`

func TestVersion(t *testing.T) {
	if out := run(t, "version"); out != "folio dev\n" {
		t.Errorf("version = %q", out)
	}
}

func TestCheckJSONStore(t *testing.T) {
	dir := t.TempDir()
	posts := filepath.Join(dir, "posts.json")
	if err := os.WriteFile(posts, []byte(samplePosts), 0o644); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, dir, "session_secret: s\nposts_path: "+posts+"\n")

	out := run(t, "check")
	if !strings.Contains(out, "config ok (json store)") || !strings.Contains(out, "3 posts in 2 categories") {
		t.Errorf("check output = %q", out)
	}
}

func TestImportThenCheckSQLite(t *testing.T) {
	dir := t.TempDir()
	posts := filepath.Join(dir, "posts.json")
	if err := os.WriteFile(posts, []byte(samplePosts), 0o644); err != nil {
		t.Fatal(err)
	}
	db := filepath.Join(dir, "data", "posts.db")
	writeConfig(t, dir, "session_secret: s\npost_store: sqlite\ndatabase_path: "+db+"\n")

	if out := run(t, "import", posts); !strings.Contains(out, "imported 3 posts") {
		t.Errorf("import output = %q", out)
	}
	if out := run(t, "check"); !strings.Contains(out, "3 posts in 2 categories") {
		t.Errorf("check output = %q", out)
	}
}
