package command

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/atomicstack/integration-selector/internal/logging/events"
	"github.com/atomicstack/integration-selector/internal/selector"
	tea "github.com/charmbracelet/bubbletea"
)

// Slot names an independent fetch lane. Starting a fetch cancels whatever
// was running in the same slot.
type Slot int

const (
	SlotBase Slot = iota
	SlotSearch
)

// Request encapsulates one fetch.
type Request struct {
	Fetch   selector.FetchRequest
	PerPage int
}

// Result is delivered to the model when a fetch finishes. Canceled results
// were superseded or torn down and carry no data.
type Result struct {
	Slot     Slot
	Request  selector.FetchRequest
	Page     selector.Page
	Err      error
	Canceled bool
}

// Bus runs fetches against a selector.Fetcher.
type Bus struct {
	screen  string
	fetcher selector.Fetcher

	mu      sync.Mutex
	cancels map[Slot]context.CancelFunc
	stopped bool
}

// New initialises a fetch bus for one screen.
func New(screen string, fetcher selector.Fetcher) *Bus {
	return &Bus{
		screen:  screen,
		fetcher: fetcher,
		cancels: make(map[Slot]context.CancelFunc),
	}
}

// Execute wraps a fetch into a Bubble Tea command while emitting trace logs.
// The context is created here, on the caller's goroutine, so a later Execute
// or Cancel for the same slot always sees it.
func (b *Bus) Execute(slot Slot, req Request) tea.Cmd {
	if b == nil || b.fetcher == nil {
		return nil
	}
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return nil
	}
	if cancel, ok := b.cancels[slot]; ok {
		cancel()
		events.Fetch.Cancel(b.screen, req.Fetch.Term)
	}
	ctx, cancel := context.WithCancel(context.Background())
	b.cancels[slot] = cancel
	b.mu.Unlock()

	events.Fetch.Start(b.screen, req.Fetch.Term, req.Fetch.Page, req.Fetch.Base)
	fetcher := b.fetcher
	screen := b.screen
	return func() tea.Msg {
		defer b.release(slot, ctx)
		start := time.Now()
		page, err := fetcher.Fetch(ctx, selector.Query{
			Term:    req.Fetch.Term,
			Page:    req.Fetch.Page,
			PerPage: req.PerPage,
		})
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return Result{Slot: slot, Request: req.Fetch, Canceled: true}
		}
		if err != nil {
			events.Fetch.Error(screen, req.Fetch.Term, err)
			return Result{Slot: slot, Request: req.Fetch, Err: err}
		}
		events.Fetch.Done(screen, req.Fetch.Term, req.Fetch.Page, len(page.Items), page.More, time.Since(start))
		return Result{Slot: slot, Request: req.Fetch, Page: page}
	}
}

// Cancel aborts the fetch running in slot, if any.
func (b *Bus) Cancel(slot Slot) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if cancel, ok := b.cancels[slot]; ok {
		cancel()
		delete(b.cancels, slot)
	}
}

// Stop cancels every running fetch and refuses new ones.
func (b *Bus) Stop() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
	for slot, cancel := range b.cancels {
		cancel()
		delete(b.cancels, slot)
	}
}

// Running reports whether slot has a fetch in flight.
func (b *Bus) Running(slot Slot) bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.cancels[slot]
	return ok
}

func (b *Bus) release(slot Slot, ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	// a newer fetch may already own the slot
	cancel, ok := b.cancels[slot]
	if !ok {
		return
	}
	if ctxDone(ctx) {
		return
	}
	cancel()
	delete(b.cancels, slot)
}

func ctxDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
