package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveWritesBaseObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	s.SetBase("s3://archive/logs")
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(raw), "{\n  \"base\": \"s3://archive/logs\"\n}\n"; got != want {
		t.Errorf("state file = %q, want %q", got, want)
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a decode error")
	}
}
