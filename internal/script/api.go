package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stormview/internal/input/key"
	"github.com/dshills/stormview/internal/input/mode"
)

// api returns the functions of the view table.
// They only run inside Engine.run, which already holds e.mu.
func (e *Engine) api() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"message":    e.luaMessage,
		"mode":       e.luaMode,
		"cursor":     e.luaCursor,
		"line_count": e.luaLineCount,
		"feed":       e.luaFeed,
	}
}

// view.message(text)
func (e *Engine) luaMessage(L *lua.LState) int {
	text := L.CheckString(1)
	e.pending = append(e.pending, Request{Action: mode.Message(text)})
	return 0
}

// view.mode() -> "normal" | "insert"
func (e *Engine) luaMode(L *lua.LState) int {
	m := mode.Normal
	if e.view != nil {
		m = e.view.Mode()
	}
	L.Push(lua.LString(m.Name()))
	return 1
}

// view.cursor() -> row, col
func (e *Engine) luaCursor(L *lua.LState) int {
	var row, col int
	if e.view != nil {
		p := e.view.CursorPosition()
		row, col = p.Row, p.Col
	}
	L.Push(lua.LNumber(row))
	L.Push(lua.LNumber(col))
	return 2
}

// view.line_count() -> n
func (e *Engine) luaLineCount(L *lua.LState) int {
	n := 0
	if e.view != nil {
		n = e.view.Document().LineCount()
	}
	L.Push(lua.LNumber(n))
	return 1
}

// view.feed(keys)
func (e *Engine) luaFeed(L *lua.LState) int {
	spec := L.CheckString(1)
	events, err := key.ParseSequence(spec)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	if len(events) == 0 {
		return 0
	}
	e.pending = append(e.pending, Request{Keys: events})
	return 0
}
