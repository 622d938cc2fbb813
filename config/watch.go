package config

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/veilcraft/soundscape/engine"
)

// Watch reloads the config file on change and applies it to the engine
// Returns a stop function releasing the watcher. Editors often replace
// files instead of writing in place, so creates count as changes too
func Watch(path string, e *engine.Engine, logger *log.Logger) (func(), error) {
	if logger == nil {
		logger = log.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating config watcher")
	}

	// Watch the directory; the file itself may be replaced atomically
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "watching %s", dir)
	}

	target := filepath.Clean(path)
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					logger.Printf("soundscape: config reload failed: %v", err)
					continue
				}
				cfg.Apply(e)
				logger.Printf("soundscape: config reloaded from %s", path)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Printf("soundscape: config watcher: %v", err)
			}
		}
	}()

	return func() { w.Close() }, nil
}
