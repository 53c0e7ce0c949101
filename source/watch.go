package source

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileDebounce is the default time to wait for a changed file to settle
// before it is reloaded.
const FileDebounce = 100 * time.Millisecond

// Watch reloads the GIF at path whenever it changes on disk and passes the
// new Animation to reload. The containing directory is watched so that
// editors that replace files by renaming are seen. Files that fail to
// decode are logged and skipped. If debounce is less than zero FileDebounce
// is used. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, debounce time.Duration, reload func(*Animation)) error {
	if debounce < 0 {
		debounce = FileDebounce
	}
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		return err
	}

	// The timer is only armed after a relevant event.
	settle := time.NewTimer(debounce)
	if !settle.Stop() {
		<-settle.C
	}
	for {
		select {
		case <-ctx.Done():
			settle.Stop()
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			settle.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch %s: %v", path, err)
		case <-settle.C:
			a, err := Load(path)
			if err != nil {
				log.Printf("reload: %v", err)
				continue
			}
			log.Printf("Reloaded %s: %d frames %dx%d", path, len(a.Frames), a.Width, a.Height)
			reload(a)
		}
	}
}
