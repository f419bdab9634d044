// Command testbed runs the interactive timeline against an in-memory server
// seeded with sample entries, so the UI can be exercised without a backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/logging"
	teaui "tableflip.dev/journal/pkg/runner/tea"
	"tableflip.dev/journal/pkg/store"
)

type options struct {
	entries    int
	span       int
	latency    time.Duration
	failDelete bool
	logFile    string
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "testbed",
		Short: "Run the interactive timeline against sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	rootCmd.PersistentFlags().IntVar(&opts.entries, "entries", 24, "number of sample entries")
	rootCmd.PersistentFlags().IntVar(&opts.span, "span", 180, "days the sample entries are spread over")
	rootCmd.PersistentFlags().DurationVar(&opts.latency, "latency", 400*time.Millisecond, "delay added to every server call")
	rootCmd.PersistentFlags().BoolVar(&opts.failDelete, "fail-delete", false, "make every delete fail")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log", "", "write debug logs to this file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	dir, err := os.MkdirTemp("", "journal-testbed-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	log, err := logging.ForTerminal("dev", opts.logFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	prefs, err := store.Load(testbedConfig{dir: dir, log: opts.logFile}, store.WithLogger(log))
	if err != nil {
		return err
	}

	mem := newMemStore(sampleEntries(opts.entries, opts.span, time.Now()), opts.latency)
	mem.failDelete = opts.failDelete
	svc := &app.Service{Store: mem, Log: log.Named("service")}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log.Info("testbed starting", zap.Int("entries", opts.entries), zap.String("prefs", dir))
	return teaui.Run(ctx, teaui.Options{
		Service:     svc,
		Preferences: prefs,
		Watcher:     prefs,
		Log:         log,
	})
}

// testbedConfig keeps preferences in a throwaway directory.
type testbedConfig struct {
	dir string
	log string
}

func (c testbedConfig) BasePath() string       { return c.dir }
func (c testbedConfig) Server() string         { return "memory://testbed" }
func (c testbedConfig) Timeout() time.Duration { return time.Minute }
func (c testbedConfig) Env() string            { return "dev" }
func (c testbedConfig) LogFile() string        { return c.log }
