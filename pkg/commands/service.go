package commands

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/logging"
	"tableflip.dev/journal/pkg/notify"
	"tableflip.dev/journal/pkg/store"
)

// env is what a command runs against.
type env struct {
	Config  store.Config
	Log     *zap.Logger
	Prefs   *store.DiskStore
	Service *app.Service
}

// loadEnv reads the configuration and builds the service. fullscreen keeps
// log output off the terminal.
func loadEnv(fullscreen bool) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	newLog := logging.New
	if fullscreen {
		newLog = logging.ForTerminal
	}
	log, err := newLog(cfg.Env(), cfg.LogFile())
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	c, err := client.New(cfg.Server(), client.WithTimeout(cfg.Timeout()), client.WithLogger(log))
	if err != nil {
		return nil, err
	}
	prefs, err := store.Load(cfg, store.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return &env{
		Config: cfg,
		Log:    log,
		Prefs:  prefs,
		Service: &app.Service{
			Store:    c,
			Notifier: &notify.Printer{},
			Log:      log,
		},
	}, nil
}

func (e *env) Close() {
	_ = e.Log.Sync()
}

// knownTags is the server's tag list, or nothing when it can not be reached.
func (e *env) knownTags(ctx context.Context) []string {
	quiet := &app.Service{Store: e.Service.Store, Log: e.Log}
	ts, err := quiet.Tags(ctx)
	if err != nil {
		return nil
	}
	return entry.TagNames(ts)
}

func tagCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	e, err := loadEnv(true)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer e.Close()
	return e.knownTags(context.Background()), cobra.ShellCompDirectiveNoFileComp
}
