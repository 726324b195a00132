package provider

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/atomicstack/integration-selector/internal/selector"
)

// DefaultDedupeTimeout bounds a shared fetch once its callers have gone.
const DefaultDedupeTimeout = 30 * time.Second

// Dedupe shares one in-flight fetch between callers asking the same query.
// The shared fetch is detached from any single caller's context so one
// caller giving up does not fail the others; each caller still returns as
// soon as its own context is done.
type Dedupe struct {
	next    selector.Fetcher
	timeout time.Duration
	group   singleflight.Group
}

// NewDedupe wraps next.
func NewDedupe(next selector.Fetcher, timeout time.Duration) *Dedupe {
	if timeout <= 0 {
		timeout = DefaultDedupeTimeout
	}
	return &Dedupe{next: next, timeout: timeout}
}

func (d *Dedupe) Fetch(ctx context.Context, q selector.Query) (selector.Page, error) {
	key := fmt.Sprintf("%d\x00%d\x00%s", q.Page, q.PerPage, q.Term)
	ch := d.group.DoChan(key, func() (interface{}, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		return d.next.Fetch(shared, q)
	})
	select {
	case <-ctx.Done():
		return selector.Page{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return selector.Page{}, res.Err
		}
		page := res.Val.(selector.Page)
		return selector.Page{Items: selector.CloneItems(page.Items), More: page.More}, nil
	}
}
