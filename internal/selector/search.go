package selector

import "strings"

// Phase is the state of a Search.
type Phase int

const (
	// PhaseIdle shows the base list.
	PhaseIdle Phase = iota
	// PhaseSearching has a term whose debounce timer has not fired yet.
	PhaseSearching
	// PhaseResolved shows results for the current term.
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSearching:
		return "searching"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Outcome describes what happened when a debounce timer fired.
type Outcome int

const (
	// OutcomeStale means the timer belonged to a superseded term.
	OutcomeStale Outcome = iota
	// OutcomeFiltered means results were computed locally.
	OutcomeFiltered
	// OutcomeFetch means the caller must run the returned FetchRequest.
	OutcomeFetch
)

// FetchRequest identifies one remote fetch. Base requests load the unfiltered
// list; the others load results for Term.
type FetchRequest struct {
	Gen  uint64
	Term string
	Page int
	Base bool
}

// Search coordinates the search term, the base list and the displayed
// results. It is not safe for concurrent use; every method is expected to run
// on the UI event loop.
type Search struct {
	strategy Strategy

	base        []Item
	basePage    int
	baseMore    bool
	baseGen     uint64
	loadingBase bool

	term     string
	results  []Item
	page     int
	more     bool
	phase    Phase
	gen      uint64
	inflight bool

	closed bool
}

// NewSearch creates an idle search over the route's base list.
func NewSearch(route Route) *Search {
	return &Search{
		strategy: route.Strategy,
		base:     CloneItems(route.Base),
	}
}

// SetTerm records a new term. An empty term returns to idle and discards the
// results. Every call invalidates pending timers and in-flight fetches; the
// returned generation must be passed to Fire when the debounce timer for this
// term expires. arm is false when no timer is needed.
func (s *Search) SetTerm(term string) (gen uint64, arm bool) {
	if s.closed {
		return 0, false
	}
	s.gen++
	s.inflight = false
	if term == "" {
		s.term = ""
		s.results = nil
		s.page = 0
		s.more = false
		s.phase = PhaseIdle
		return s.gen, false
	}
	s.term = term
	s.phase = PhaseSearching
	return s.gen, true
}

// Clear is shorthand for SetTerm("").
func (s *Search) Clear() {
	s.SetTerm("")
}

// Fire handles an expired debounce timer for generation gen.
func (s *Search) Fire(gen uint64) (FetchRequest, Outcome) {
	if s.closed || gen != s.gen || s.phase != PhaseSearching {
		return FetchRequest{}, OutcomeStale
	}
	if s.strategy == StrategyLocal {
		s.results = FilterItems(s.base, s.term)
		s.page = 0
		s.more = false
		s.phase = PhaseResolved
		return FetchRequest{}, OutcomeFiltered
	}
	s.inflight = true
	return FetchRequest{Gen: gen, Term: s.term}, OutcomeFetch
}

// LoadBase starts loading the unfiltered list of a remote source.
func (s *Search) LoadBase() (FetchRequest, bool) {
	if s.closed || s.strategy != StrategyRemote {
		return FetchRequest{}, false
	}
	s.baseGen++
	s.loadingBase = true
	return FetchRequest{Gen: s.baseGen, Base: true}, true
}

// NextPage requests the following page of whatever list is displayed, when
// the provider reported more data and nothing is loading.
func (s *Search) NextPage() (FetchRequest, bool) {
	if s.closed || s.strategy != StrategyRemote {
		return FetchRequest{}, false
	}
	if s.results == nil {
		if s.phase != PhaseIdle || s.loadingBase || !s.baseMore {
			return FetchRequest{}, false
		}
		s.baseGen++
		s.loadingBase = true
		return FetchRequest{Gen: s.baseGen, Base: true, Page: s.basePage + 1}, true
	}
	if s.phase != PhaseResolved || s.inflight || !s.more {
		return FetchRequest{}, false
	}
	s.inflight = true
	return FetchRequest{Gen: s.gen, Term: s.term, Page: s.page + 1}, true
}

// Resolve applies a fetch result. Results of superseded requests, or any
// result after Close, are discarded and Resolve reports false. A failed or
// empty search yields an empty, non-nil result list.
func (s *Search) Resolve(req FetchRequest, page Page, err error) bool {
	if s.closed {
		return false
	}
	if req.Base {
		return s.resolveBase(req, page, err)
	}
	if req.Gen != s.gen || req.Term != s.term || s.term == "" {
		return false
	}
	s.inflight = false
	s.phase = PhaseResolved
	if req.Page > 0 {
		if err == nil {
			s.results = append(s.results, page.Items...)
			s.page = req.Page
			s.more = page.More
		} else {
			s.more = false
		}
		return true
	}
	s.page = 0
	if err != nil || page.Items == nil {
		s.results = []Item{}
		s.more = false
		return true
	}
	s.results = CloneItems(page.Items)
	s.more = page.More
	return true
}

func (s *Search) resolveBase(req FetchRequest, page Page, err error) bool {
	if req.Gen != s.baseGen {
		return false
	}
	s.loadingBase = false
	if err != nil {
		s.baseMore = false
		return true
	}
	if req.Page > 0 {
		s.base = append(s.base, page.Items...)
	} else if page.Items == nil {
		s.base = []Item{}
	} else {
		s.base = CloneItems(page.Items)
	}
	s.basePage = req.Page
	s.baseMore = page.More
	return true
}

// Close tears the search down. Later timers and fetch results are ignored.
func (s *Search) Close() {
	s.closed = true
	s.inflight = false
	s.loadingBase = false
}

// Closed reports whether Close was called.
func (s *Search) Closed() bool { return s.closed }

// Term returns the current search term.
func (s *Search) Term() string { return s.term }

// Phase returns the current phase.
func (s *Search) Phase() Phase { return s.phase }

// Gen returns the current search generation.
func (s *Search) Gen() uint64 { return s.gen }

// Results returns the current results; nil while idle.
func (s *Search) Results() []Item { return CloneItems(s.results) }

// Base returns the unfiltered list.
func (s *Search) Base() []Item { return CloneItems(s.base) }

// Visible returns the list to display: the base list while idle, the results
// otherwise.
func (s *Search) Visible() []Item {
	if s.results == nil {
		return CloneItems(s.base)
	}
	return CloneItems(s.results)
}

// Loading reports whether a fetch affecting the displayed list is in flight.
func (s *Search) Loading() bool {
	if s.inflight {
		return true
	}
	return s.loadingBase && s.results == nil
}

// HasMore reports whether the displayed list can be extended with NextPage.
func (s *Search) HasMore() bool {
	if s.results == nil {
		return s.baseMore
	}
	return s.more
}

// NoResults reports whether a search resolved to an empty list.
func (s *Search) NoResults() bool {
	return s.results != nil && len(s.results) == 0 && s.phase == PhaseResolved
}

// FilterItems returns the items whose label contains term, ignoring case and
// keeping the original order. The result is never nil.
func FilterItems(items []Item, term string) []Item {
	needle := strings.ToLower(term)
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label()), needle) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
