package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMissingFileIsSignedOut(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.SignedIn() {
		t.Fatalf("fresh session should be signed out")
	}
	if s.Token() != "" {
		t.Fatalf("fresh session should have no token")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	state := State{UserID: 1, UserName: "Ana", UserEmail: "ana@example.com", Token: "jwt-abc"}
	if err := s.Save(state); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !s.SignedIn() || s.Token() != "jwt-abc" {
		t.Fatalf("state after save: %+v", s.State())
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reloaded.State() != state {
		t.Fatalf("reloaded = %+v, want %+v", reloaded.State(), state)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("session file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s, _ := Open(path)
	if err := s.Save(State{UserID: 1, Token: "tok"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.SignedIn() {
		t.Fatalf("session should be signed out after clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("session file should be removed, stat err=%v", err)
	}
	// Clearing twice is fine.
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestCorruptFileFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Fatalf("expected error for corrupt session file")
	}
}
