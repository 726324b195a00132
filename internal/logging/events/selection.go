package events

import "github.com/atomicstack/integration-selector/internal/logging"

type SelectionTracer struct{}

var Selection = SelectionTracer{}

func (SelectionTracer) Toggle(screen, key string, selected bool, total int) {
	logging.Trace("selection.toggle", map[string]interface{}{
		"screen":   screen,
		"key":      key,
		"selected": selected,
		"total":    total,
	})
}

func (SelectionTracer) Remove(screen, key string, total int) {
	logging.Trace("selection.remove", map[string]interface{}{"screen": screen, "key": key, "total": total})
}

func (SelectionTracer) Hydrate(screen string, requested, restored int) {
	logging.Trace("selection.hydrate", map[string]interface{}{"screen": screen, "requested": requested, "restored": restored})
}

func (SelectionTracer) Submit(screen string, keys []string) {
	logging.Trace("selection.submit", map[string]interface{}{"screen": screen, "keys": keys})
}
