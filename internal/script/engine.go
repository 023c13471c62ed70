package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stormview/internal/cursor"
	"github.com/dshills/stormview/internal/document"
	"github.com/dshills/stormview/internal/input/key"
	"github.com/dshills/stormview/internal/input/mode"
)

// DefaultTimeout bounds every call into Lua.
const DefaultTimeout = time.Second

// Hook names.
const (
	HookStart      = "on_start"
	HookModeChange = "on_mode_change"
)

// Inspector is the read-only view of the viewer a script can query.
type Inspector interface {
	Mode() mode.Mode
	CursorPosition() cursor.Position
	Document() *document.Document
}

// Request is one queued script call.
// When Keys is non-nil the keys are replayed; otherwise Action is dispatched.
type Request struct {
	Action mode.Action
	Keys   []key.Event
}

// String implements fmt.Stringer.
func (r Request) String() string {
	if r.Keys == nil {
		return r.Action.String()
	}
	parts := make([]string, len(r.Keys))
	for i, k := range r.Keys {
		parts[i] = k.String()
	}
	return "feed(" + strings.Join(parts, "") + ")"
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-call execution timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithPrint redirects the Lua print function.
func WithPrint(fn func(string)) Option {
	return func(e *Engine) {
		e.print = fn
	}
}

// Engine owns a sandboxed Lua state.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes calls made
// from Go; hooks are expected to be driven from the viewer loop.
type Engine struct {
	L *lua.LState

	mu      sync.Mutex
	view    Inspector
	timeout time.Duration
	print   func(string)
	pending []Request
	closed  bool
}

// New creates an engine whose view API reads from view.
func New(view Inspector, opts ...Option) *Engine {
	e := &Engine{
		view:    view,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.L = lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(e.L)
	e.installSandbox()
	e.L.SetGlobal("view", e.L.SetFuncs(e.L.NewTable(), e.api()))

	return e
}

// openSafeLibraries opens only the base, table, string and math libraries.
// io, os, debug and package are never opened.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// installSandbox removes loaders that reach the file system and routes print.
func (e *Engine) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		e.L.SetGlobal(name, lua.LNil)
	}

	if e.print == nil {
		return
	}
	e.L.SetGlobal("print", e.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		e.print(strings.Join(parts, "\t"))
		return 0
	}))
}

// DoFile executes the script at path.
func (e *Engine) DoFile(path string) error {
	return e.run(func() error {
		return e.L.DoFile(path)
	})
}

// DoString executes a chunk of Lua.
func (e *Engine) DoString(code string) error {
	return e.run(func() error {
		return e.L.DoString(code)
	})
}

// HasHook reports whether the script defines the global function name.
func (e *Engine) HasHook(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false
	}
	return e.L.GetGlobal(name).Type() == lua.LTFunction
}

// OnStart calls on_start if it is defined.
func (e *Engine) OnStart() error {
	return e.callHook(HookStart)
}

// OnModeChange calls on_mode_change(from, to) if it is defined.
func (e *Engine) OnModeChange(from, to mode.Mode) error {
	return e.callHook(HookModeChange, lua.LString(from.Name()), lua.LString(to.Name()))
}

// callHook calls a global function when present. A missing hook is not an error.
func (e *Engine) callHook(name string, args ...lua.LValue) error {
	err := e.run(func() error {
		fn := e.L.GetGlobal(name)
		if fn.Type() != lua.LTFunction {
			return nil
		}
		return e.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		}, args...)
	})
	if err != nil && !errors.Is(err, ErrClosed) {
		return &HookError{Hook: name, Err: err}
	}
	return err
}

// run executes fn under the mutex with the call timeout and panic recovery.
func (e *Engine) run(fn func() error) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	err = fn()
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %v", ErrTimeout, e.timeout)
	}
	return err
}

// Drain returns and clears the queued requests in call order.
func (e *Engine) Drain() []Request {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := e.pending
	e.pending = nil
	return out
}

// Pending returns the number of queued requests.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Close releases the Lua state. Further calls return ErrClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	e.pending = nil
	return nil
}
