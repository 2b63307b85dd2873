package persistence

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/register"
)

func TestImageStore(t *testing.T) {
	t.Run("SaveAndLoadEmpty", func(t *testing.T) {
		store := NewImageStore(filepath.Join(t.TempDir(), "state.json"))

		if err := store.Save(&ImageState{Layout: "A8D8L1C1[]"}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got.Version != StateVersion {
			t.Errorf("Version = %d, want %d", got.Version, StateVersion)
		}
		if got.SavedAt.IsZero() {
			t.Error("SavedAt not set")
		}
		if got.Layout != "A8D8L1C1[]" {
			t.Errorf("Layout = %q, want A8D8L1C1[]", got.Layout)
		}
	})

	t.Run("LoadNonExistent", func(t *testing.T) {
		store := NewImageStore(filepath.Join(t.TempDir(), "nonexistent.json"))

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != nil {
			t.Errorf("Load() = %v, want nil for non-existent file", got)
		}
	})

	t.Run("CreatesParentDirectory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "state.json")
		if err := NewImageStore(path).Save(&ImageState{}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("state file missing: %v", err)
		}
	})

	t.Run("UnsupportedVersion", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.json")
		if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewImageStore(path).Load(); err == nil {
			t.Error("expected error for unsupported version")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		store := NewImageStore(filepath.Join(t.TempDir(), "state.json"))
		if err := store.Save(&ImageState{SavedAt: time.Now()}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Errorf("second Clear() error = %v", err)
		}
		if got, _ := store.Load(); got != nil {
			t.Error("state still present after Clear")
		}
	})
}

func TestFromImageSortsRegisters(t *testing.T) {
	st := FromImage("A8D8L1C1[]", register.Image{
		Values: map[uint64]uint64{0x30: 3, 0x10: 1},
		Fifos:  map[uint64][]uint64{0x20: {7, 8}, 0x10: {9}},
	})

	want := []RegisterState{
		{Addr: 0x10, Value: 1, Fifo: []uint64{9}},
		{Addr: 0x20, Value: 0, Fifo: []uint64{7, 8}},
		{Addr: 0x30, Value: 3},
	}
	if len(st.Registers) != len(want) {
		t.Fatalf("got %d registers, want %d", len(st.Registers), len(want))
	}
	for i, r := range st.Registers {
		if r.Addr != want[i].Addr || r.Value != want[i].Value || len(r.Fifo) != len(want[i].Fifo) {
			t.Errorf("register %d = %+v, want %+v", i, r, want[i])
		}
	}
}

func TestSnapshotRestoreThroughFile(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "regs.json")

	src := register.NewSimpleTarget("src", cfg)
	if err := src.Write(ctx, 0x42, 0x99); err != nil {
		t.Fatal(err)
	}
	if err := src.FifoWrite(ctx, 0x50, []uint64{4, 5}); err != nil {
		t.Fatal(err)
	}
	if err := NewImageStore(path).Snapshot(cfg, src); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	dst := register.NewAdvancedTarget("dst", cfg)
	ok, err := NewImageStore(path).Restore(cfg, dst)
	if err != nil || !ok {
		t.Fatalf("Restore() = %v, %v", ok, err)
	}
	if v, _ := dst.Read(ctx, 0x42); v != 0x99 {
		t.Errorf("0x42 = 0x%x, want 0x99", v)
	}
	if n := dst.FifoLen(0x50); n != 2 {
		t.Errorf("fifo length = %d, want 2", n)
	}

	other := config.MustNew(config.Params{AddressBits: 16, AddressBytes: 2, DataBits: 8, DataBytes: 1, LengthBytes: 1, CrcBytes: 1})
	_, err = NewImageStore(path).Restore(other, dst)
	if err == nil || !strings.Contains(err.Error(), "A16D8L1C1") {
		t.Errorf("Restore() with wrong config error = %v", err)
	}

	ok, err = NewImageStore(filepath.Join(t.TempDir(), "missing.json")).Restore(cfg, dst)
	if ok || err != nil {
		t.Errorf("Restore() of missing file = %v, %v", ok, err)
	}
}
