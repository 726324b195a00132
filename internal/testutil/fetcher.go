// Package testutil provides scripted collaborators shared by package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/integration-selector/internal/selector"
)

// Key addresses one scripted response.
type Key struct {
	Term string
	Page int
}

// Fetcher is a scripted selector.Fetcher. Unknown keys yield an empty page.
type Fetcher struct {
	mu      sync.Mutex
	pages   map[Key]selector.Page
	errs    map[Key]error
	queries []selector.Query
	hold    map[Key]chan struct{}
}

// NewFetcher returns a Fetcher with no scripted responses.
func NewFetcher() *Fetcher {
	return &Fetcher{
		pages: make(map[Key]selector.Page),
		errs:  make(map[Key]error),
		hold:  make(map[Key]chan struct{}),
	}
}

// Serve scripts the page returned for term and page.
func (f *Fetcher) Serve(term string, page int, items []selector.Item, more bool) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[Key{term, page}] = selector.Page{Items: items, More: more}
	return f
}

// Fail scripts an error for term and page.
func (f *Fetcher) Fail(term string, page int, err error) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[Key{term, page}] = err
	return f
}

// Hold blocks fetches for term and page until Release is called or the
// fetch context ends.
func (f *Fetcher) Hold(term string, page int) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hold[Key{term, page}] = make(chan struct{})
	return f
}

// Release unblocks fetches held for term and page.
func (f *Fetcher) Release(term string, page int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.hold[Key{term, page}]; ok {
		close(ch)
		delete(f.hold, Key{term, page})
	}
}

// Fetch implements selector.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, q selector.Query) (selector.Page, error) {
	key := Key{q.Term, q.Page}
	f.mu.Lock()
	f.queries = append(f.queries, q)
	gate := f.hold[key]
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return selector.Page{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[key]; err != nil {
		return selector.Page{}, err
	}
	return f.pages[key], nil
}

// Queries returns every query received so far.
func (f *Fetcher) Queries() []selector.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]selector.Query(nil), f.queries...)
}

// Plain strips terminal escape sequences from rendered output.
func Plain(s string) string {
	return ansi.Strip(s)
}

// Options builds dialog options from value/text pairs.
func Options(pairs ...string) []selector.DialogOption {
	opts := make([]selector.DialogOption, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		opts = append(opts, selector.DialogOption{Value: pairs[i], Text: pairs[i+1]})
	}
	return opts
}
