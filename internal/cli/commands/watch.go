package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"context-variants/internal/cli/config"
)

// DefaultDebounce is how long watch waits for changes to settle.
const DefaultDebounce = 100 * time.Millisecond

// watchedExts are the file extensions that trigger a new check.
var watchedExts = map[string]bool{".yaml": true, ".yml": true, ".go": true}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	in := &InputOptions{}

	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [definition files...]",
		Short: "Re-run check whenever an input changes",
		Long: `Run check once, then again every time a definition file or Go source
in the watched directories is written. Stops on interrupt.`,
		Example: `  context-variants watch users.yaml --package ./models`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd.OutOrStdout(), args, in, debounce)
		},
	}

	in.AddFlags(cmd.Flags())
	cmd.Flags().DurationVar(&debounce, "debounce", DefaultDebounce, "Quiet period before re-running check")

	return cmd
}

func runWatch(ctx context.Context, w io.Writer, files []string, in *InputOptions, debounce time.Duration) error {
	if err := in.Validate(files); err != nil {
		return err
	}

	log := config.Logger(ctx)
	styles := DefaultStyles()

	check := func() {
		if _, err := checkOnce(ctx, w, files, in); err != nil && ctx.Err() == nil {
			_, _ = fmt.Fprintf(w, "%s %v\n", styles.Error.Render("error"), err)
		}
	}

	check()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dirs := in.watchDirs(files)
	for _, dir := range dirs {
		if err := watchDir(watcher, dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	log.Info().Strs("dirs", dirs).Msg("watching for changes")

	return watchLoop(ctx, watcher, debounce, log, func(name string) {
		log.Info().Str("file", name).Msg("change detected")
		check()
	})
}

// watchDir adds dir and its subdirectories to the watcher, skipping hidden ones.
func watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		if path != dir && len(info.Name()) > 0 && info.Name()[0] == '.' {
			return filepath.SkipDir
		}

		return watcher.Add(path)
	})
}

// watchLoop calls onChange once per burst of relevant writes, after the
// burst has been quiet for delay. onChange runs on the loop goroutine so
// checks never overlap. It returns when ctx is done or the watcher closes.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, delay time.Duration, log zerolog.Logger, onChange func(name string)) error {
	var timer *time.Timer

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	trigger := make(chan string, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case name := <-trigger:
			onChange(name)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if !watchedExts[filepath.Ext(event.Name)] {
				continue
			}

			if timer != nil {
				timer.Stop()
			}

			name := event.Name
			timer = time.AfterFunc(delay, func() {
				select {
				case trigger <- name:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Warn().Err(err).Msg("watcher error")
		}
	}
}
