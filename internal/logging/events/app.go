package events

import "github.com/atomicstack/integration-selector/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Complete(screen string, multi bool, count int) {
	logging.Trace("app.complete", map[string]interface{}{"screen": screen, "multi": multi, "count": count})
}

func (AppTracer) Cancel(screen string) {
	logging.Trace("app.cancel", map[string]interface{}{"screen": screen})
}
