package registry

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/uimetricsgo/internal/ctxlog"
)

// WatchCatalog monitors the metrics root for changes and swaps a freshly
// built snapshot into the handle each time an entry is added, removed, or
// rewritten. It runs until ctx is cancelled.
//
// If a rebuild fails, the error is logged and the previous snapshot remains
// in effect — WatchCatalog never swaps in a partial registry.
func WatchCatalog(ctx context.Context, root string, handle *Handle, rebuild func(context.Context) (*Registry, error)) error {
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addCatalogDirs(watcher, root); err != nil {
		return err
	}

	logger.Info("Watching metrics catalog for changes.", "root", root)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			next, err := rebuild(ctx)
			if err != nil {
				logger.Error("Catalog rebuild failed, keeping previous registry.", "root", root, "error", err)
				continue
			}
			handle.Replace(next)
			logger.Info("Registry snapshot replaced.", "metrics", next.Len())

			// New entry directories need their own watches; editors that
			// save atomically may also have replaced a watched inode.
			if err := addCatalogDirs(watcher, root); err != nil {
				logger.Error("Failed to refresh catalog watches.", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Catalog watcher error.", "error", err)
		}
	}
}

// addCatalogDirs watches the root and each of its entry subdirectories.
func addCatalogDirs(watcher *fsnotify.Watcher, root string) error {
	if err := watcher.Add(root); err != nil {
		return err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		// Ignore errors for directories that vanished between ReadDir and Add.
		_ = watcher.Add(filepath.Join(root, entry.Name()))
	}
	return nil
}
