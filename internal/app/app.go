// Package app provides the main application structure and coordination
// for the stormview viewer. It wires the document, state, renderer,
// configuration and script components together and owns the event loop.
package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/stormview/internal/config"
	"github.com/dshills/stormview/internal/document"
	"github.com/dshills/stormview/internal/input/mode"
	"github.com/dshills/stormview/internal/renderer"
	"github.com/dshills/stormview/internal/renderer/backend"
	"github.com/dshills/stormview/internal/script"
	"github.com/dshills/stormview/internal/state"
)

// Greeting is the startup message.
const Greeting = "stormview: press q to quit, i for insert"

// Application is the central coordinator for all stormview components.
// State is owned by the goroutine running Run; other goroutines only
// talk to it through channels.
type Application struct {
	mu sync.Mutex

	cfg      *config.Config
	cfgPath  string
	backend  backend.Backend
	renderer *renderer.Renderer
	state    *state.State
	script   *script.Engine
	watcher  *config.Watcher

	logger  *Logger
	logFile io.Closer
	metrics *Metrics
	session string

	// startup messages queued before the loop runs
	notices []string

	running      atomic.Bool
	done         chan struct{}
	shutdownOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// File is the document to view. Empty starts with an empty document.
	File string

	// ConfigPath is the config file. Empty uses config.DefaultPath().
	ConfigPath string

	// Config skips loading and uses this configuration.
	Config *config.Config

	// Backend is the terminal. Nil creates a tcell terminal.
	Backend backend.Backend

	// LogOutput overrides the log file from the configuration.
	LogOutput io.Writer

	// Clock replaces time.Now for message timestamps.
	Clock func() time.Time

	// DisableWatch turns off config live reload.
	DisableWatch bool
}

// New creates a new Application with the given options.
// Configuration, log file and document problems are not fatal; they are
// logged and surfaced as messages once the viewer starts.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		done:    make(chan struct{}),
		metrics: NewMetrics(),
		session: uuid.NewString(),
	}

	app.initConfig()
	app.initLogger()

	if err := app.initBackend(); err != nil {
		app.closeLog()
		return nil, err
	}

	doc := app.loadDocument()

	app.state = state.New(
		state.WithDocument(doc),
		state.WithTerminal(app.backend),
		state.WithClock(opts.Clock),
		state.WithMessageTimeout(app.cfg.Editor.MessageTimeout.Std()),
	)

	app.renderer = renderer.New(app.backend, app.rendererOptions(app.cfg))

	app.initScript()

	return app, nil
}

// initConfig resolves the configuration. Failures fall back to defaults.
func (app *Application) initConfig() {
	if app.opts.Config != nil {
		app.cfg = app.opts.Config
		app.cfgPath = app.opts.ConfigPath
		return
	}

	app.cfgPath = app.opts.ConfigPath
	if app.cfgPath == "" {
		app.cfgPath = config.DefaultPath()
	}

	cfg, err := config.Load(app.cfgPath)
	if err != nil {
		app.notices = append(app.notices, fmt.Sprintf("config: %v", err))
		cfg = config.Default()
	}
	app.cfg = cfg
}

// initLogger opens the log destination. Logging is discarded without one.
func (app *Application) initLogger() {
	out := app.opts.LogOutput
	var openErr error
	if out == nil && app.cfg.Log.File != "" {
		f, err := OpenLogFile(app.cfg.Log.File)
		if err != nil {
			openErr = err
		} else {
			out = f
			app.logFile = f
		}
	}

	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(app.cfg.Log.Level),
		Output: out,
		Prefix: "stormview",
	}).WithField("session", app.session)

	if openErr != nil {
		app.notices = append(app.notices, fmt.Sprintf("log: %v", openErr))
	}
	for _, n := range app.notices {
		app.logger.Warn("%s", n)
	}
}

func (app *Application) initBackend() error {
	if app.opts.Backend != nil {
		app.backend = app.opts.Backend
		return nil
	}

	t, err := backend.NewTerminal()
	if err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	app.backend = t
	return nil
}

// loadDocument reads the file, substituting the empty document on failure.
// A missing file is a new file and stays silent.
func (app *Application) loadDocument() *document.Document {
	if app.opts.File == "" {
		return document.Empty()
	}

	doc, err := document.Open(app.opts.File)
	if err == nil {
		app.logger.Info("opened %s (%d lines)", app.opts.File, doc.LineCount())
		return doc
	}

	if errors.Is(err, fs.ErrNotExist) {
		app.logger.Debug("new file %s", app.opts.File)
		return document.Empty()
	}

	opErr := NewOperationError("open", app.opts.File, err)
	app.logger.WithComponent("document").Error("%v", opErr)
	app.notices = append(app.notices, opErr.Error())
	return document.Empty()
}

// initScript loads the configured Lua script and hooks it to mode changes.
func (app *Application) initScript() {
	path := app.cfg.Script.Path
	if path == "" {
		return
	}

	log := app.logger.WithComponent("script")
	eng := script.New(app.state, script.WithPrint(func(s string) {
		log.Info("%s", s)
	}))

	if err := eng.DoFile(path); err != nil {
		_ = eng.Close()
		app.scriptFailed(NewOperationError("load script", path, err))
		return
	}

	app.script = eng
	app.state.OnModeChange(func(from, to mode.Mode) {
		if err := eng.OnModeChange(from, to); err != nil {
			app.scriptFailed(err)
		}
	})
	log.Info("loaded %s", path)
}

// scriptFailed logs a script error and shows it.
func (app *Application) scriptFailed(err error) {
	app.metrics.RecordScriptError()
	app.logComponentError("script", err)
	app.notices = append(app.notices, err.Error())
	if app.running.Load() {
		app.flushNotices()
	}
}

// flushNotices shows the pending notices, newest last.
func (app *Application) flushNotices() {
	for _, n := range app.notices {
		app.state.Dispatch(mode.Message(n))
	}
	app.notices = nil
}

// rendererOptions derives renderer options from cfg.
func (app *Application) rendererOptions(cfg *config.Config) renderer.Options {
	opts := renderer.DefaultOptions()
	opts.Filename = app.opts.File
	opts.Filler = cfg.Editor.Filler

	style, err := renderer.StatusStyle(cfg.UI.StatusForeground, cfg.UI.StatusBackground)
	if err != nil {
		app.logger.Warn("status colours: %v", err)
	} else {
		opts.StatusStyle = style
	}
	return opts
}

// Run starts the application main loop.
// Blocks until the user quits or Shutdown is called, then returns ErrQuit.
// Any other error is fatal. The terminal is restored on every path.
func (app *Application) Run() (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.backend == nil {
		return ErrNoBackend
	}

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()
	defer app.close()

	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
			app.logger.Error("recovered panic: %v", r)
		}
	}()

	app.state.Resize(app.backend.Size())
	app.start()

	return app.eventLoop()
}

// start shows the greeting and runs the startup hook.
func (app *Application) start() {
	app.state.Dispatch(mode.Message(Greeting))
	app.flushNotices()

	if app.script != nil {
		if err := app.script.OnStart(); err != nil {
			app.scriptFailed(err)
		}
		app.drainScript()
	}

	if !app.opts.DisableWatch {
		app.startWatcher()
	}

	app.logger.Info("started (%dx%d)", app.state.VisibleCols(), app.state.VisibleRows())
}

// startWatcher watches the config file when its directory exists.
func (app *Application) startWatcher() {
	if app.cfgPath == "" {
		return
	}
	w, err := config.NewWatcher(app.cfgPath)
	if err != nil {
		app.logger.WithComponent("config").Debug("not watching %s: %v", app.cfgPath, err)
		return
	}
	app.mu.Lock()
	app.watcher = w
	app.mu.Unlock()
}

// Shutdown asks a running loop to stop. Safe to call from any goroutine,
// more than once.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		close(app.done)
	})
}

// close releases the script engine, the watcher and the log file.
func (app *Application) close() {
	if app.script != nil {
		_ = app.script.Close()
	}

	app.mu.Lock()
	w := app.watcher
	app.watcher = nil
	app.mu.Unlock()
	if w != nil {
		_ = w.Close()
	}

	app.logger.WithFields(app.metrics.Snapshot().Fields()).Info("stopped")
	app.closeLog()
}

func (app *Application) closeLog() {
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
		app.logger.SetOutput(io.Discard)
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// State returns the view state. Only the loop goroutine may mutate it.
func (app *Application) State() *state.State {
	return app.state
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Session returns the session identifier carried on every log line.
func (app *Application) Session() string {
	return app.session
}
