// Package script runs an optional user Lua script alongside the viewer.
//
// The script runs in a sandboxed gopher-lua state with only the base, table,
// string and math libraries opened. Every call into Lua is bounded by a
// timeout. Scripts see a single global table, view:
//
//	view.message(text)   -- show text on the message line
//	view.mode()          -- "normal" or "insert"
//	view.cursor()        -- row, col
//	view.line_count()    -- number of document lines
//	view.feed(keys)      -- replay keys, e.g. "jjl" or "i<Down><Esc>"
//
// and may define two hooks:
//
//	function on_start() end
//	function on_mode_change(from, to) end
//
// Calls that change the view are not applied immediately. They are queued
// and handed to the owner of the view through Drain, so the view is only ever
// mutated by one goroutine. Reads such as view.mode() therefore observe the
// state as it was before the current hook started.
package script
