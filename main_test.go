package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nf/c8/chip8"
)

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	for _, c := range []struct {
		name string
		size int
		want int
	}{
		{"empty.ch8", 0, 0},
		{"small.ch8", 0x84, 0x84},
		{"full.ch8", chip8.MaxProgramSize, chip8.MaxProgramSize},
		{"big.ch8", chip8.MaxProgramSize + 100, chip8.MaxProgramSize},
	} {
		t.Run(c.name, func(t *testing.T) {
			name := filepath.Join(dir, c.name)
			data := bytes.Repeat([]byte{0xa5}, c.size)
			if err := os.WriteFile(name, data, 0644); err != nil {
				t.Fatal(err)
			}
			prog, err := loadProgram(name)
			if err != nil {
				t.Fatal(err)
			}
			if len(prog) != c.want {
				t.Errorf("loaded %d bytes, want %d", len(prog), c.want)
			}
		})
	}
	if _, err := loadProgram(filepath.Join(dir, "missing.ch8")); err == nil {
		t.Errorf("loading missing file succeeded")
	}
}

type resetRecorder chan *chip8.Machine

func (r resetRecorder) Reset(m *chip8.Machine) {
	select {
	case r <- m:
	default:
	}
}

func TestWatchReloads(t *testing.T) {
	var (
		dir  = t.TempDir()
		name = filepath.Join(dir, "prog.ch8")
	)
	if err := os.WriteFile(name, []byte{0x12, 0x00}, 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var (
		resets = make(resetRecorder, 1)
		errc   = make(chan error, 1)
	)
	go func() { errc <- watch(ctx, name, resets) }()

	// Give the watcher time to start before writing.
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(name, []byte{0x60, 0x42}, 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case m := <-resets:
		if g := m.Mem[chip8.ProgramStart : chip8.ProgramStart+2]; !bytes.Equal(g, []byte{0x60, 0x42}) {
			t.Errorf("reloaded program starts % x, want 60 42", g)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	if err := <-errc; err != nil {
		t.Errorf("watch returned %v", err)
	}
}
