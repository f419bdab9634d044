package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/store"
	"tableflip.dev/journal/pkg/timeline"
)

// Options configures Run.
type Options struct {
	Service     *app.Service
	Preferences store.Preferences
	// Watcher reports preference changes made by other processes. Optional.
	Watcher store.Watcher
	Log     *zap.Logger
}

// Run starts the interactive program and blocks until it exits.
func Run(ctx context.Context, o Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := o.Log
	if log == nil {
		log = zap.NewNop()
	}
	loop := timeline.NewLoopScheduler(nil)
	m := New(o.Service,
		WithPreferences(o.Preferences),
		WithLoop(loop),
		WithContext(ctx),
		WithLogger(log),
	)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	loop.Bind(func(msg any) { p.Send(msg) })

	if o.Watcher != nil {
		events, err := o.Watcher.Watch(ctx)
		if err != nil {
			log.Warn("watching preferences failed", zap.Error(err))
		} else {
			go func() {
				for ev := range events {
					loop.Post(prefsEventMsg{event: ev})
				}
			}()
		}
	}

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Teardown()
	} else {
		loop.StopAll()
	}
	return err
}
