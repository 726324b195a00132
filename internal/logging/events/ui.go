package events

import "github.com/atomicstack/integration-selector/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ChipTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
	Chip   = ChipTracer{}
)

func (UITracer) Enter(screen, key, label, filter string) {
	logging.Trace("ui.enter", map[string]interface{}{
		"screen": screen,
		"key":    key,
		"label":  label,
		"filter": filter,
	})
}

func (UITracer) Cursor(screen string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"screen": screen, "cursor": cursor})
}

func (UITracer) HeaderAction(screen, action string) {
	logging.Trace("ui.header-action", map[string]interface{}{"screen": screen, "action": action})
}

// Edit records a change to the search prompt text.
func (FilterTracer) Edit(screen, key, filter string) {
	logging.Trace("filter.edit", map[string]interface{}{"screen": screen, "key": key, "filter": filter})
}

func (FilterTracer) Caret(screen, key string, pos int) {
	logging.Trace("filter.caret", map[string]interface{}{"screen": screen, "key": key, "cursor": pos})
}

func (ChipTracer) Focus(screen string, index int) {
	logging.Trace("chip.focus", map[string]interface{}{"screen": screen, "index": index})
}

func (ChipTracer) Blur(screen string) {
	logging.Trace("chip.blur", map[string]interface{}{"screen": screen})
}
