// internal/dispatch/canvas.go
package dispatch

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/inkwell-editor/inkwell/internal/logger"
)

// handleCanvasKey dispatches a key inside a canvas view. Like the tree
// branch, every key landing here is consumed.
func (d *Dispatcher) handleCanvasKey(r rune, canvas CanvasEditor) bool {
	if canvas == nil {
		return true
	}
	switch r {
	case 'h':
		d.moveCanvasSelection(canvas, -1, 0)
	case 'j':
		d.moveCanvasSelection(canvas, 0, 1)
	case 'k':
		d.moveCanvasSelection(canvas, 0, -1)
	case 'l':
		d.moveCanvasSelection(canvas, 1, 0)
	case 't':
		canvas.CreateNode(NodeText)
	case 'f':
		canvas.CreateNode(NodeFile)
	case 'z':
		canvas.ZoomToSelection()
	case 'H':
		d.panCanvas(canvas, d.panStep, 0)
	case 'L':
		d.panCanvas(canvas, -d.panStep, 0)
	case 'J':
		d.panCanvas(canvas, 0, -d.panStep)
	case 'K':
		d.panCanvas(canvas, 0, d.panStep)
	case 'd':
		canvas.DeleteSelection()
	case 'i':
		canvas.EditSelection()
	case '/':
		canvas.OpenSearch()
	}
	return true
}

// moveCanvasSelection navigates between nodes, auto-selecting one first
// when nothing is selected.
func (d *Dispatcher) moveCanvasSelection(canvas CanvasEditor, dx, dy int) {
	if !canvas.HasSelection() {
		canvas.SelectNearest()
		return
	}
	canvas.MoveSelection(dx, dy)
}

// transformRE captures the translate and scale components of a canvas
// transform string, e.g. "translate(120.5,-34) scale(0.75)".
var transformRE = regexp.MustCompile(`translate\((-?[0-9.]+)[ ,]+(-?[0-9.]+)\)\s*scale\((-?[0-9.]+)\)`)

// panCanvas shifts the canvas transform by a fixed pixel step, parsing
// the current transform string and writing the adjusted one back.
func (d *Dispatcher) panCanvas(canvas CanvasEditor, dx, dy int) {
	x, y, scale, err := ParseTransform(canvas.Transform())
	if err != nil {
		logger.Debugf("Dispatcher: unparseable canvas transform: %v", err)
		return
	}
	canvas.SetTransform(FormatTransform(x+float64(dx), y+float64(dy), scale))
}

// ParseTransform extracts the translate and scale components of a canvas
// transform string.
func ParseTransform(transform string) (x, y, scale float64, err error) {
	m := transformRE.FindStringSubmatch(transform)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("transform %q does not match translate/scale form", transform)
	}
	if x, err = strconv.ParseFloat(m[1], 64); err != nil {
		return 0, 0, 0, fmt.Errorf("transform x: %w", err)
	}
	if y, err = strconv.ParseFloat(m[2], 64); err != nil {
		return 0, 0, 0, fmt.Errorf("transform y: %w", err)
	}
	if scale, err = strconv.ParseFloat(m[3], 64); err != nil {
		return 0, 0, 0, fmt.Errorf("transform scale: %w", err)
	}
	return x, y, scale, nil
}

// FormatTransform renders transform components back into the canonical
// string form.
func FormatTransform(x, y, scale float64) string {
	return fmt.Sprintf("translate(%s,%s) scale(%s)",
		strconv.FormatFloat(x, 'f', -1, 64),
		strconv.FormatFloat(y, 'f', -1, 64),
		strconv.FormatFloat(scale, 'f', -1, 64))
}
