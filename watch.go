package main

import (
	"log"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/chipi/emulator"
)

// watchROM reloads romFile into r whenever it changes, until stop is closed.
func watchROM(romFile string, r *emulator.Runner, stop <-chan bool) error {
	romFile = filepath.Clean(romFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(romFile)); err != nil {
		return err
	}

	var reload <-chan time.Time
	for {
		select {
		case <-stop:
			return nil
		case <-reload:
			reload = nil
			rom, err := emulator.ReadROM(romFile)
			if err != nil {
				log.Printf("watch: %v", err)
				break
			}
			if err := r.Swap(rom); err != nil {
				log.Printf("watch: %v", err)
				break
			}
			log.Printf("reload %s", rom.Title)
		case ev := <-watcher.Event:
			if filepath.Clean(ev.Name) == romFile && !ev.IsAttrib() && !ev.IsDelete() {
				reload = time.After(100 * time.Millisecond)
			}
		case err := <-watcher.Error:
			log.Printf("watch: %v", err)
		}
	}
}
