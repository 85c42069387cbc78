package counters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.json")

	c, err := Load(path, 3)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Taken() != 0 || c.Printed() != 0 || c.Forgotten() != 0 {
		t.Errorf("fresh counters = %d/%d/%d, want zeros", c.Taken(), c.Printed(), c.Forgotten())
	}
	if c.RemainingDuplicates() != 3 {
		t.Errorf("RemainingDuplicates() = %d, want 3", c.RemainingDuplicates())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("counters file not created: %v", err)
	}
}

func TestIncrementsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.json")

	c, err := Load(path, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := c.IncrementTaken(); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.IncrementPrinted(); err != nil {
		t.Fatal(err)
	}
	if err := c.IncrementForgotten(); err != nil {
		t.Fatal(err)
	}

	// Reload from disk.
	c2, err := Load(path, 3)
	if err != nil {
		t.Fatal(err)
	}
	if c2.Taken() != 3 {
		t.Errorf("Taken() = %d after reload, want 3", c2.Taken())
	}
	if c2.Printed() != 1 || c2.Forgotten() != 1 {
		t.Errorf("Printed()/Forgotten() = %d/%d, want 1/1", c2.Printed(), c2.Forgotten())
	}
}

func TestDuplicateBudget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.json")
	c, err := Load(path, 2)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := c.ConsumeDuplicate(); err != nil {
			t.Fatal(err)
		}
	}
	if c.RemainingDuplicates() != 0 {
		t.Errorf("RemainingDuplicates() = %d, want 0 (never negative)", c.RemainingDuplicates())
	}

	if err := c.ResetDuplicates(4); err != nil {
		t.Fatal(err)
	}
	if c.RemainingDuplicates() != 4 {
		t.Errorf("RemainingDuplicates() = %d after reset, want 4", c.RemainingDuplicates())
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, 3); err == nil {
		t.Error("Load() accepted a corrupt counters file")
	}
}

func TestLoadPreservesUnknownKeys(t *testing.T) {
	// External tooling may add keys; updates must not destroy them.
	path := filepath.Join(t.TempDir(), "counters.json")
	seed := `{"taken":7,"printed":2,"forgotten":0,"remaining_duplicates":1,"site":"hall-b"}`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path, 3)
	if err != nil {
		t.Fatal(err)
	}
	if c.Taken() != 7 {
		t.Errorf("Taken() = %d, want 7", c.Taken())
	}
	if err := c.IncrementTaken(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); !strings.Contains(got, `"site":"hall-b"`) {
		t.Errorf("unknown key lost after update: %s", got)
	}
}
