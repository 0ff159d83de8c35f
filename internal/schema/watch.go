package schema

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// LoadDir loads every *.json and *.yaml/*.yml file in dir into the store
// (spec §3: "populated at init by loading a directory of schema files").
// Files are loaded in lexical filename order so duplicate tool ids across
// files resolve deterministically through the same version-checked path
// LoadJSON/LoadYAML already enforce. The first error aborts remaining files in the
// directory; already-loaded schemas are left in place (no partial rollback
// of the store itself, consistent with store() being atomic per-schema).
func (s *Store) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := s.loadFile(path); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return s.LoadYAML(raw)
	case ".json":
		return s.LoadJSON(raw)
	default:
		return nil // not a schema file; ignore silently (e.g. README)
	}
}

// WatchDir reloads dir into the store whenever a file in it changes,
// exercising the same version-checked load path LoadDir uses — a downgrade
// or malformed file on disk is simply rejected and logged by the caller via
// the returned error channel, never silently applied. This is additive
// ambient tooling (spec_full §3), not required by spec.md; it stops when
// ctx is canceled.
func (s *Store) WatchDir(ctx context.Context, dir string) (<-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	errs := make(chan error, 1)
	go func() {
		defer watcher.Close()
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := s.loadFile(ev.Name); err != nil {
					select {
					case errs <- err:
					default:
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				default:
				}
			}
		}
	}()
	return errs, nil
}
