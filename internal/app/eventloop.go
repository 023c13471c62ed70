package app

import (
	"time"

	"github.com/dshills/stormview/internal/config"
	"github.com/dshills/stormview/internal/input/key"
	"github.com/dshills/stormview/internal/input/mode"
	"github.com/dshills/stormview/internal/renderer/backend"
)

// maxScriptRounds bounds hook chains such as an on_mode_change that feeds
// keys which change the mode again.
const maxScriptRounds = 8

// eventLoop is the main application loop.
//
// Every iteration handles one input, tick or reload and then renders. A quit
// is noticed at the top of the next iteration, so the frame drawn after the
// quit action is the last one.
func (app *Application) eventLoop() error {
	events := app.startInputPolling()

	ticker := time.NewTicker(pollInterval(app.cfg))
	defer ticker.Stop()

	if err := app.render(); err != nil {
		return err
	}

	for {
		if app.state.ShouldQuit() {
			app.logger.Info("quit")
			return ErrQuit
		}

		select {
		case <-app.done:
			app.logger.Info("shutdown requested")
			return ErrQuit

		case ev := <-events:
			if ev.Type == backend.EventClosed {
				app.logger.Warn("backend closed")
				return ErrQuit
			}
			app.handleBackendEvent(ev)

		case <-ticker.C:

		case r, ok := <-app.reloads():
			if ok {
				app.applyReload(r, ticker)
			}
		}

		app.drainScript()

		if err := app.render(); err != nil {
			return err
		}
	}
}

// render draws one frame and records its timing.
func (app *Application) render() error {
	t := StartTimer()
	if err := app.renderer.Render(app.state); err != nil {
		return NewComponentError("renderer", "render", err)
	}
	app.metrics.RecordRender(t.Elapsed())
	return nil
}

// handleBackendEvent processes a backend event and routes it appropriately.
func (app *Application) handleBackendEvent(ev backend.Event) {
	switch ev.Type {
	case backend.EventResize:
		app.handleResize(ev)
	case backend.EventKey:
		app.handleKeyEvent(ev)
	}
}

// handleResize follows the terminal size and rescrolls.
func (app *Application) handleResize(ev backend.Event) {
	app.metrics.RecordResize()
	app.state.Resize(ev.Width, ev.Height)
	app.logger.Debug("resize %dx%d", ev.Width, ev.Height)
}

// handleKeyEvent feeds a key to the state.
func (app *Application) handleKeyEvent(ev backend.Event) {
	app.metrics.RecordKey()
	keyEv := convertToKeyEvent(ev)
	action := app.state.Keypress(keyEv)
	if action.Kind != mode.ActionNone {
		app.logger.Debug("key %s -> %s", keyEv, action)
	}
}

// drainScript applies the requests queued by script calls.
func (app *Application) drainScript() {
	if app.script == nil {
		return
	}

	for round := 0; round < maxScriptRounds; round++ {
		reqs := app.script.Drain()
		if len(reqs) == 0 {
			return
		}
		app.metrics.RecordScriptActions(len(reqs))

		for _, r := range reqs {
			if r.Keys != nil {
				for _, k := range r.Keys {
					app.state.Keypress(k)
				}
				continue
			}
			app.state.Dispatch(r.Action)
		}
		app.state.Scroll()
	}

	if n := len(app.script.Drain()); n > 0 {
		app.logger.WithComponent("script").Warn("dropped %d requests after %d rounds", n, maxScriptRounds)
	}
}

// pollInterval returns the forced re-render period.
func pollInterval(cfg *config.Config) time.Duration {
	if d := cfg.Editor.PollInterval.Std(); d > 0 {
		return d
	}
	return config.DefaultPollInterval
}

// reloads returns the watcher channel, or nil when not watching.
// A nil channel never fires in select.
func (app *Application) reloads() <-chan config.Reload {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.watcher == nil {
		return nil
	}
	return app.watcher.Changes()
}

// applyReload installs a reloaded configuration. A bad reload keeps the
// previous configuration and shows the error.
func (app *Application) applyReload(r config.Reload, ticker *time.Ticker) {
	app.metrics.RecordReload()
	log := app.logger.WithComponent("config")

	if r.Err != nil {
		log.Warn("reload failed: %v", r.Err)
		app.state.Dispatch(mode.Message("config: " + r.Err.Error()))
		return
	}

	cfg := r.Config
	app.cfg = cfg
	app.state.SetMessageTimeout(cfg.Editor.MessageTimeout.Std())
	app.renderer.SetOptions(app.rendererOptions(cfg))
	app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	ticker.Reset(pollInterval(cfg))

	log.Info("reloaded")
	app.state.Dispatch(mode.Message("config reloaded"))
}

// startInputPolling starts a goroutine that polls for input events.
// Events are sent to the returned channel.
//
// PollEvent is blocking, so this goroutine may not exit immediately on
// shutdown. Shutting down the backend unblocks it with EventClosed.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		for {
			ev := app.backend.PollEvent()

			if ev.Type == backend.EventClosed {
				select {
				case events <- ev:
				case <-app.done:
				case <-time.After(time.Second):
				}
				return
			}

			// Send event (non-blocking with buffer to avoid deadlock)
			select {
			case events <- ev:
			case <-app.done:
				return
			default:
				app.metrics.RecordInputDropped()
			}
		}
	}()

	return events
}

// convertToKeyEvent converts a backend.Event to a key.Event.
func convertToKeyEvent(ev backend.Event) key.Event {
	mods := key.ModNone
	if ev.Mod.Has(backend.ModCtrl) {
		mods = mods.With(key.ModCtrl)
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods = mods.With(key.ModAlt)
	}
	if ev.Mod.Has(backend.ModShift) {
		mods = mods.With(key.ModShift)
	}
	if ev.Mod.Has(backend.ModMeta) {
		mods = mods.With(key.ModMeta)
	}

	switch ev.Key {
	case backend.KeyRune:
		return key.NewRuneEvent(ev.Rune, mods)
	case backend.KeyCtrlC:
		return key.NewRuneEvent('c', mods.With(key.ModCtrl))
	default:
		return key.NewSpecialEvent(mapBackendKey(ev.Key), mods)
	}
}

// mapBackendKey maps a backend.Key to a key.Key.
func mapBackendKey(bk backend.Key) key.Key {
	switch bk {
	case backend.KeyEscape:
		return key.KeyEscape
	case backend.KeyEnter:
		return key.KeyEnter
	case backend.KeyTab:
		return key.KeyTab
	case backend.KeyBackspace:
		return key.KeyBackspace
	case backend.KeyDelete:
		return key.KeyDelete
	case backend.KeyInsert:
		return key.KeyInsert
	case backend.KeyHome:
		return key.KeyHome
	case backend.KeyEnd:
		return key.KeyEnd
	case backend.KeyPageUp:
		return key.KeyPageUp
	case backend.KeyPageDown:
		return key.KeyPageDown
	case backend.KeyUp:
		return key.KeyUp
	case backend.KeyDown:
		return key.KeyDown
	case backend.KeyLeft:
		return key.KeyLeft
	case backend.KeyRight:
		return key.KeyRight
	default:
		return key.KeyNone
	}
}
