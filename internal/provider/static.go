package provider

import (
	"context"

	"github.com/atomicstack/integration-selector/internal/selector"
)

// Static serves a fixed option list through the Fetcher contract, filtering
// and paging in process.
type Static struct {
	options []selector.Item
}

// NewStatic returns a fetcher over options.
func NewStatic(options []selector.DialogOption) *Static {
	return &Static{options: selector.OptionsToItems(options)}
}

func (s *Static) Fetch(ctx context.Context, q selector.Query) (selector.Page, error) {
	if err := ctx.Err(); err != nil {
		return selector.Page{}, err
	}
	matches := selector.FilterItems(s.options, q.Term)
	return paginate(matches, q.Page, q.PerPage), nil
}

func paginate(items []selector.Item, page, perPage int) selector.Page {
	if perPage <= 0 {
		return selector.Page{Items: items}
	}
	if page < 0 {
		page = 0
	}
	start := page * perPage
	if start >= len(items) {
		return selector.Page{Items: []selector.Item{}}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return selector.Page{Items: items[start:end], More: end < len(items)}
}
