package ui

import (
	"github.com/atomicstack/integration-selector/internal/logging/events"
	"github.com/atomicstack/integration-selector/internal/selector"
	"github.com/atomicstack/integration-selector/internal/ui/command"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// searchFireMsg is delivered when the debounce timer for gen expires.
type searchFireMsg struct {
	gen uint64
}

// filterChanged forwards the prompt text to the search coordinator. A new
// non-empty term (re)arms the debounce timer; clearing the term restores the
// base list straight away.
func (m *Model) filterChanged() tea.Cmd {
	search := m.ctrl.Search()
	term := m.level.Query.Text()
	if term == search.Term() {
		return nil
	}
	gen, arm := search.SetTerm(term)
	m.bus.Cancel(command.SlotSearch)
	m.errMsg = ""
	if !arm {
		m.debouncer.Cancel()
		events.Search.Idle(m.screen, gen)
		m.level.RestoreItems(search.Visible())
		m.syncViewport()
		return nil
	}
	events.Search.Arm(m.screen, term, gen)
	ticket := m.debouncer.Arm()
	return func() tea.Msg {
		if !ticket.Wait() {
			return nil
		}
		return searchFireMsg{gen: gen}
	}
}

func (m *Model) handleSearchFireMsg(msg tea.Msg) tea.Cmd {
	fire, ok := msg.(searchFireMsg)
	if !ok {
		return nil
	}
	search := m.ctrl.Search()
	req, outcome := search.Fire(fire.gen)
	switch outcome {
	case selector.OutcomeFiltered:
		results := search.Visible()
		events.Search.Filtered(m.screen, search.Term(), len(results))
		m.level.ShowResults(results, search.Term())
		m.syncViewport()
		return nil
	case selector.OutcomeFetch:
		return m.fetch(command.SlotSearch, req)
	default:
		events.Search.Stale(m.screen, fire.gen)
		return nil
	}
}

func (m *Model) fetch(slot command.Slot, req selector.FetchRequest) tea.Cmd {
	return m.bus.Execute(slot, command.Request{Fetch: req, PerPage: m.perPage})
}

func (m *Model) handleFetchResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok || res.Canceled {
		return nil
	}
	search := m.ctrl.Search()
	if !search.Resolve(res.Request, res.Page, res.Err) {
		events.Fetch.Discard(m.screen, res.Request.Term, res.Request.Gen)
		return nil
	}
	if res.Err != nil {
		m.errMsg = res.Err.Error()
	} else {
		m.errMsg = ""
	}
	switch {
	case res.Request.Base:
		if search.Results() == nil {
			m.level.UpdateItems(search.Visible())
		}
	case res.Request.Page == 0:
		m.level.ShowResults(search.Visible(), search.Term())
	default:
		m.level.UpdateItems(search.Visible())
	}
	m.syncViewport()
	return nil
}

// loadMore requests the next page once the cursor reaches the end of a list
// whose provider reported more data.
func (m *Model) loadMore() tea.Cmd {
	if !m.level.AtEnd() {
		return nil
	}
	search := m.ctrl.Search()
	if !search.HasMore() || search.Loading() {
		return nil
	}
	req, ok := search.NextPage()
	if !ok {
		return nil
	}
	slot := command.SlotSearch
	if req.Base {
		slot = command.SlotBase
	}
	return m.fetch(slot, req)
}

func (m *Model) loading() bool {
	return m.ctrl.Search().Loading()
}

func (m *Model) startSpinner() tea.Cmd {
	if !m.animate || m.spinning || !m.loading() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	if !m.loading() {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(tick)
	return cmd
}
