package directory

import (
	"context"

	"github.com/atomicstack/integration-selector/internal/selector"
)

// Users adapts the directory to the selector's Fetcher contract.
func (d *Directory) Users() selector.Fetcher {
	return selector.FetchFunc(func(ctx context.Context, q selector.Query) (selector.Page, error) {
		users, more, err := d.SearchUsers(ctx, q.Term, q.Page, q.PerPage)
		if err != nil {
			return selector.Page{}, err
		}
		items := make([]selector.Item, len(users))
		for i, u := range users {
			items[i] = u
		}
		return selector.Page{Items: items, More: more}, nil
	})
}

// Channels serves the channels of one team.
func (d *Directory) Channels(teamID string) selector.Fetcher {
	return selector.FetchFunc(func(ctx context.Context, q selector.Query) (selector.Page, error) {
		channels, more, err := d.SearchChannels(ctx, teamID, q.Term, q.Page, q.PerPage)
		if err != nil {
			return selector.Page{}, err
		}
		items := make([]selector.Item, len(channels))
		for i, c := range channels {
			items[i] = c
		}
		return selector.Page{Items: items, More: more}, nil
	})
}
