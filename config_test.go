package folio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yml")
	yml := `name: Jane Doe
role: Backend Engineer
skills: [Go, SQL]
projects:
  - title: Folio
    tech: [Go, Echo]
    repo: https://github.com/jane/folio
socials:
  - name: GitHub
    icon: fab fa-github
    url: https://github.com/jane
page_ttl: 5m
session_secret: from-file
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLIO_SESSION_SECRET", "from-env")
	t.Setenv("FOLIO_POST_STORE", "sqlite")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "Jane Doe" || cfg.Role != "Backend Engineer" {
		t.Errorf("identity = %q %q", cfg.Name, cfg.Role)
	}
	if len(cfg.Skills) != 2 || len(cfg.Projects) != 1 || cfg.Projects[0].Tech[1] != "Echo" {
		t.Errorf("lists = %+v %+v", cfg.Skills, cfg.Projects)
	}
	if cfg.SessionSecret != "from-env" {
		t.Errorf("env should override file, got %q", cfg.SessionSecret)
	}
	if cfg.PostStore != "sqlite" {
		t.Errorf("post_store = %q", cfg.PostStore)
	}
	if cfg.PageTTL != 5*time.Minute {
		t.Errorf("page_ttl = %v", cfg.PageTTL)
	}
	if cfg.Addr != ":3000" || cfg.MaxPages != 1000 {
		t.Errorf("defaults not applied: %q %d", cfg.Addr, cfg.MaxPages)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if cfg.PostsPath != "public/blog-posts.json" || cfg.PostStore != "json" {
		t.Errorf("defaults = %q %q", cfg.PostsPath, cfg.PostStore)
	}
}

func TestValidate(t *testing.T) {
	cfg := SiteConfig{}
	cfg.setDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("missing session secret should fail")
	}
	cfg.SessionSecret = "s"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config: %v", err)
	}
	cfg.PostStore = "redis"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown post store should fail")
	}
}

func TestThemeHelpers(t *testing.T) {
	if ParseTheme("light") != ThemeLight || ParseTheme("") != ThemeDark || ParseTheme("blue") != ThemeDark {
		t.Error("ParseTheme")
	}
	if ThemeDark.Toggle() != ThemeLight || ThemeLight.Toggle() != ThemeDark {
		t.Error("Toggle")
	}
	if ThemeLight.BodyClass() != "light-mode" || ThemeDark.BodyClass() != "" {
		t.Error("BodyClass")
	}
}
