package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSlotPutGet(t *testing.T) {
	store := openTemp(t)

	data := []byte{'T', 'S', 'G', '2', 1, 2, 3}
	if err := store.PutSlot(Slot{Slot: 1, Level: 3, LevelName: "caves", Tick: 90, Data: data}); err != nil {
		t.Fatalf("PutSlot() failed: %v", err)
	}

	got, err := store.GetSlot(1)
	if err != nil {
		t.Fatalf("GetSlot() failed: %v", err)
	}
	if !bytes.Equal(got.Data, data) {
		t.Errorf("Data = %v, expected %v", got.Data, data)
	}
	if got.Level != 3 || got.LevelName != "caves" || got.Tick != 90 {
		t.Errorf("GetSlot() = (%d, %q, %d), expected (3, \"caves\", 90)", got.Level, got.LevelName, got.Tick)
	}
}

func TestSlotOverwrite(t *testing.T) {
	store := openTemp(t)

	if err := store.PutSlot(Slot{Slot: 2, LevelName: "a", Data: []byte{1}}); err != nil {
		t.Fatalf("PutSlot() failed: %v", err)
	}
	if err := store.PutSlot(Slot{Slot: 2, LevelName: "b", Data: []byte{2, 2}}); err != nil {
		t.Fatalf("PutSlot() failed: %v", err)
	}

	infos, err := store.ListSlots()
	if err != nil {
		t.Fatalf("ListSlots() failed: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("Expected 1 slot, got %d", len(infos))
	}
	if infos[0].LevelName != "b" || infos[0].Size != 2 {
		t.Errorf("slot = (%q, %d), expected (\"b\", 2)", infos[0].LevelName, infos[0].Size)
	}
}

func TestSlotNotFound(t *testing.T) {
	store := openTemp(t)

	if _, err := store.GetSlot(7); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("GetSlot() error = %v, expected ErrSlotNotFound", err)
	}
	if err := store.DeleteSlot(7); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("DeleteSlot() error = %v, expected ErrSlotNotFound", err)
	}
}

func TestSlotDelete(t *testing.T) {
	store := openTemp(t)

	for _, n := range []int{3, 1, 2} {
		if err := store.PutSlot(Slot{Slot: n, LevelName: "hall", Data: []byte{byte(n)}}); err != nil {
			t.Fatalf("PutSlot() failed: %v", err)
		}
	}
	if err := store.DeleteSlot(2); err != nil {
		t.Fatalf("DeleteSlot() failed: %v", err)
	}

	infos, err := store.ListSlots()
	if err != nil {
		t.Fatalf("ListSlots() failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 slots, got %d", len(infos))
	}
	if infos[0].Slot != 1 || infos[1].Slot != 3 {
		t.Errorf("slots = [%d %d], expected [1 3]", infos[0].Slot, infos[1].Slot)
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTemp(t)

	for i := 0; i < 5; i++ {
		if _, err := store.RecordRun(RunResult{LevelName: "hall", Seed: int32(i), Ticks: 300, Hash: "abc"}); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}
	if _, err := store.RecordRun(RunResult{LevelName: "caves", Ticks: 10, Hash: "def"}); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("hall", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].Seed != 4 {
		t.Errorf("newest seed = %d, expected 4", runs[0].Seed)
	}
	for _, r := range runs {
		if r.LevelName != "hall" {
			t.Errorf("LevelName = %q, expected \"hall\"", r.LevelName)
		}
	}
}
