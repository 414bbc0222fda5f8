package main

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/c8/chip8"
	"github.com/nf/c8/host"
)

// reloadDelay lets editors and assemblers finish writing before the
// program is read again.
const reloadDelay = 100 * time.Millisecond

// resetter is implemented by host.Runner.
type resetter interface {
	Reset(*chip8.Machine)
}

var _ resetter = (*host.Runner)(nil)

// watch restarts r with a fresh machine each time progFile changes,
// until ctx is done.
func watch(ctx context.Context, progFile string, r resetter) error {
	progFile = filepath.Clean(progFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(progFile)); err != nil {
		return err
	}

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-reload:
			reload = nil
			prog, err := loadProgram(progFile)
			if err != nil {
				log.Printf("watch: %v", err)
				break
			}
			log.Printf("watch: reloading %s", filepath.Base(progFile))
			r.Reset(chip8.NewMachine(prog))
		case ev := <-watcher.Event:
			if filepath.Clean(ev.Name) == progFile && !ev.IsAttrib() && !ev.IsDelete() {
				reload = time.After(reloadDelay)
			}
		case err := <-watcher.Error:
			log.Printf("watch: %v", err)
		}
	}
}
