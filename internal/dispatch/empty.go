// internal/dispatch/empty.go
package dispatch

// emptyViewCommands maps single keys in an empty pane to fixed host
// command identifiers.
var emptyViewCommands = map[rune]string{
	'n': "file:new",
	'o': "workspace:open",
	'/': "search:open",
	't': "tree:toggle",
	'?': "help:show",
}

// handleEmptyKey runs the fixed shortcut bound to a key in an empty
// pane, if any.
func (d *Dispatcher) handleEmptyKey(r rune) bool {
	id, ok := emptyViewCommands[r]
	if !ok {
		return false
	}
	return d.runCommand(id)
}
