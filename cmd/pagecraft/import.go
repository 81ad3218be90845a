package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/eringen/pagecraft"
)

var watch bool

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import page definitions from YAML or JSON files",
	Long: `import upserts the page definitions found in each file into the page
database. A file holds one page, or a list of pages under "pages". With --watch
the files are re-imported whenever they change.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := pagecraft.NewStore(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		failed := 0
		for _, path := range args {
			failed += importFile(ctx, store, path)
		}
		if !watch {
			if failed > 0 {
				return fmt.Errorf("%d page(s) failed to import", failed)
			}
			return nil
		}
		return watchFiles(ctx, store, args)
	},
}

func init() {
	importCmd.Flags().BoolVar(&watch, "watch", false, "re-import files when they change")
}

// importFile imports one file and returns the number of pages that failed.
func importFile(ctx context.Context, store *pagecraft.Store, path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return 1
	}
	pages, err := pagecraft.ParsePages(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return 1
	}
	failed := 0
	for _, res := range pagecraft.ImportPages(ctx, store, pages) {
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "%s: %s: warning: %s\n", path, res.Slug, w)
		}
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s: %v\n", path, res.Slug, res.Err)
			failed++
			continue
		}
		fmt.Printf("imported %s from %s\n", res.Slug, path)
	}
	return failed
}

// watchFiles re-imports a file shortly after it is written, until ctx ends.
func watchFiles(ctx context.Context, store *pagecraft.Store, paths []string) error {
	logger := log.New("import")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	tracked := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		tracked[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	// Editors often replace files on save, so the directories are watched.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	logger.Infof("watching %d file(s)", len(tracked))

	const debounce = 300 * time.Millisecond
	timers := make(map[string]*time.Timer)
	changed := make(chan string)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !tracked[event.Name] || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			name := event.Name
			if t, ok := timers[name]; ok {
				t.Stop()
			}
			timers[name] = time.AfterFunc(debounce, func() {
				select {
				case changed <- name:
				case <-ctx.Done():
				}
			})
		case name := <-changed:
			if n := importFile(ctx, store, name); n > 0 {
				logger.Warnf("%s: %d page(s) failed to import", name, n)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("watch: %v", err)
		}
	}
}
