package events

import "github.com/atomicstack/integration-selector/internal/logging"

type SearchTracer struct{}

var Search = SearchTracer{}

func (SearchTracer) Arm(screen, term string, gen uint64) {
	logging.Trace("search.arm", map[string]interface{}{"screen": screen, "term": term, "gen": gen})
}

func (SearchTracer) Idle(screen string, gen uint64) {
	logging.Trace("search.idle", map[string]interface{}{"screen": screen, "gen": gen})
}

func (SearchTracer) Filtered(screen, term string, matches int) {
	logging.Trace("search.filtered", map[string]interface{}{"screen": screen, "term": term, "matches": matches})
}

func (SearchTracer) Stale(screen string, gen uint64) {
	logging.Trace("search.stale", map[string]interface{}{"screen": screen, "gen": gen})
}
