package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if got := cfg.GetFuzziness(); got != 2 {
		t.Errorf("GetFuzziness() = %d, want 2", got)
	}
	if cfg.Match.Threshold != 0.7 {
		t.Errorf("Threshold = %v, want 0.7", cfg.Match.Threshold)
	}
	if cfg.Apply.Ambiguity != AmbiguityInteractive {
		t.Errorf("Ambiguity = %q, want %q", cfg.Apply.Ambiguity, AmbiguityInteractive)
	}
	if cfg.Apply.BackupSuffix != ".orig" {
		t.Errorf("BackupSuffix = %q, want %q", cfg.Apply.BackupSuffix, ".orig")
	}
	if !cfg.ColorEnabled() {
		t.Error("ColorEnabled() = false, want true by default")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
match:
  fuzziness: 1
  threshold: 0.85
apply:
  ambiguity: first
  backup: true
  backup_suffix: .bak
log:
  path: /tmp/mend.log
ui:
  color: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := cfg.GetFuzziness(); got != 1 {
		t.Errorf("GetFuzziness() = %d, want 1", got)
	}
	if cfg.Match.Threshold != 0.85 {
		t.Errorf("Threshold = %v, want 0.85", cfg.Match.Threshold)
	}
	if cfg.Apply.Ambiguity != AmbiguityFirst {
		t.Errorf("Ambiguity = %q, want %q", cfg.Apply.Ambiguity, AmbiguityFirst)
	}
	if !cfg.Apply.Backup || cfg.Apply.BackupSuffix != ".bak" {
		t.Errorf("backup settings = %v %q", cfg.Apply.Backup, cfg.Apply.BackupSuffix)
	}
	if cfg.Log.Path != "/tmp/mend.log" {
		t.Errorf("Log.Path = %q", cfg.Log.Path)
	}
	if cfg.ColorEnabled() {
		t.Error("ColorEnabled() = true, want false")
	}
}

// An explicit fuzziness of 0 must survive loading; it is not the same as
// leaving the field unset.
func TestLoadExplicitZeroFuzziness(t *testing.T) {
	path := writeConfig(t, "match:\n  fuzziness: 0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := cfg.GetFuzziness(); got != 0 {
		t.Errorf("GetFuzziness() = %d, want 0", got)
	}
}

func TestLoadPartialFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, "apply:\n  backup: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := cfg.GetFuzziness(); got != 2 {
		t.Errorf("GetFuzziness() = %d, want 2", got)
	}
	if cfg.Match.Threshold != 0.7 {
		t.Errorf("Threshold = %v, want 0.7", cfg.Match.Threshold)
	}
	if cfg.Apply.Ambiguity != AmbiguityInteractive {
		t.Errorf("Ambiguity = %q, want %q", cfg.Apply.Ambiguity, AmbiguityInteractive)
	}
}

func TestLoadRejectsBadAmbiguity(t *testing.T) {
	path := writeConfig(t, "apply:\n  ambiguity: sometimes\n")

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "ambiguity") {
		t.Errorf("Load() error = %v, want ambiguity mode error", err)
	}
}

func TestLoadRejectsOutOfRangeFuzziness(t *testing.T) {
	path := writeConfig(t, "match:\n  fuzziness: 5\n")

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "fuzziness") {
		t.Errorf("Load() error = %v, want fuzziness range error", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !os.IsNotExist(err) {
		t.Errorf("Load() error = %v, want not-exist", err)
	}
}

func TestLoadExpandsEnvInLogPath(t *testing.T) {
	t.Setenv("MEND_TEST_LOGDIR", "/var/log/mend")
	path := writeConfig(t, "log:\n  path: $MEND_TEST_LOGDIR/run.jsonl\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Log.Path != "/var/log/mend/run.jsonl" {
		t.Errorf("Log.Path = %q, want env-expanded path", cfg.Log.Path)
	}
}

func TestSetFuzzinessOverrides(t *testing.T) {
	cfg := Default()
	cfg.SetFuzziness(0)
	if got := cfg.GetFuzziness(); got != 0 {
		t.Errorf("GetFuzziness() = %d, want 0 after SetFuzziness(0)", got)
	}
}
