package events

import (
	"time"

	"github.com/atomicstack/integration-selector/internal/logging"
)

type FetchTracer struct{}

var Fetch = FetchTracer{}

func (FetchTracer) Start(screen, term string, page int, base bool) {
	logging.Trace("fetch.start", map[string]interface{}{"screen": screen, "term": term, "page": page, "base": base})
}

func (FetchTracer) Done(screen, term string, page, count int, more bool, elapsed time.Duration) {
	logging.Trace("fetch.done", map[string]interface{}{
		"screen":  screen,
		"term":    term,
		"page":    page,
		"count":   count,
		"more":    more,
		"elapsed": elapsed.String(),
	})
}

// Error records a failed fetch. The failure is shown to the user as an empty
// result set, so it is also written to the log at warning level.
func (FetchTracer) Error(screen, term string, err error) {
	if err == nil {
		return
	}
	logging.Warn("fetch failed", err)
	logging.Trace("fetch.error", map[string]interface{}{"screen": screen, "term": term, "error": err.Error()})
}

func (FetchTracer) Discard(screen, term string, gen uint64) {
	logging.Trace("fetch.discard", map[string]interface{}{"screen": screen, "term": term, "gen": gen})
}

func (FetchTracer) Cancel(screen, term string) {
	logging.Trace("fetch.cancel", map[string]interface{}{"screen": screen, "term": term})
}
