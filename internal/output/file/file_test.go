package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/crimson-sun/actionlog/internal/model"
	"github.com/crimson-sun/actionlog/internal/output"
)

func testAction(cat model.Category, detail string) model.Action {
	return model.Action{Category: cat, Detail: detail, Tick: 7}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestWriteProducesValidNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	out, err := New(path)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := out.Write(context.Background(), testAction(model.CategoryWalkHere, "Location: (1,2,0)")); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	out.Close()

	lines := readLines(t, path)
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	for i, line := range lines {
		var rec output.Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Errorf("line %d: invalid JSON: %v", i, err)
		}
		if rec.Category != model.CategoryWalkHere {
			t.Errorf("line %d: category = %q, want WalkHere", i, rec.Category)
		}
		if rec.Line != "[Action Logger] WalkHere: Location: (1,2,0)" {
			t.Errorf("line %d: line = %q", i, rec.Line)
		}
	}
}

func TestPlainLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	out, err := New(path, WithPlainLines())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	out.Write(context.Background(), testAction(model.CategoryChat, "Speaker: a"))
	out.Close()

	lines := readLines(t, path)
	if len(lines) != 1 || lines[0] != "[Action Logger] Chat: Speaker: a" {
		t.Fatalf("unexpected contents %q", lines)
	}
}

func TestAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	for i := 0; i < 2; i++ {
		out, err := New(path, WithPlainLines())
		if err != nil {
			t.Fatalf("New error: %v", err)
		}
		out.Write(context.Background(), testAction(model.CategoryChat, "x"))
		out.Close()
	}
	if n := len(readLines(t, path)); n != 2 {
		t.Fatalf("expected 2 lines across reopen, got %d", n)
	}
}

func TestRotationTriggersAtMaxSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	// Each plain line is 38 bytes, so every write after the first rotates.
	out, err := New(path, WithPlainLines(), WithMaxSize(50), WithMaxBackups(2))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for _, d := range []string{"a", "b", "c", "d"} {
		if err := out.Write(context.Background(), testAction(model.CategoryWalkHere, "Location: "+d)); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	out.Close()

	if got := readLines(t, path); got[0] != "[Action Logger] WalkHere: Location: d" {
		t.Errorf("current file = %q", got)
	}
	if got := readLines(t, path+".1"); got[0] != "[Action Logger] WalkHere: Location: c" {
		t.Errorf(".1 = %q", got)
	}
	if got := readLines(t, path+".2"); got[0] != "[Action Logger] WalkHere: Location: b" {
		t.Errorf(".2 = %q", got)
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Error("expected at most 2 backups")
	}
}

func TestCloseFlushesData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	out, err := New(path)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	out.Write(context.Background(), testAction(model.CategoryItemDrop, "Item: Bones"))
	data, _ := os.ReadFile(path)
	if len(data) != 0 {
		t.Fatal("expected data to be buffered before Close")
	}
	out.Close()

	data, _ = os.ReadFile(path)
	if len(data) == 0 {
		t.Error("file is empty, Close did not flush buffered data")
	}
}

func TestNewFailsOnMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "no", "such", "out.jsonl")); err == nil {
		t.Fatal("expected open error")
	}
}

func TestConcurrentWritesSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	out, err := New(path)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out.Write(context.Background(), testAction(model.CategoryChat, "x"))
		}()
	}
	wg.Wait()
	out.Close()

	if n := len(readLines(t, path)); n != 50 {
		t.Errorf("got %d lines, want 50", n)
	}
}
