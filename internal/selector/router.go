package selector

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownSource reports a data source tag outside the supported set.
	ErrUnknownSource = errors.New("unknown data source")
	// ErrMissingProvider reports a data source configured without the
	// provider it needs.
	ErrMissingProvider = errors.New("missing provider")
)

// Source is the data source tag of one selector screen.
type Source int

const (
	SourceStatic Source = iota
	SourceDynamic
	SourceUsers
	SourceChannels
)

func (s Source) String() string {
	switch s {
	case SourceStatic:
		return "static-options"
	case SourceDynamic:
		return "dynamic-options"
	case SourceUsers:
		return "users"
	case SourceChannels:
		return "channels"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// ParseSource maps a configured tag to a Source.
func ParseSource(tag string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "", "static", "static-options":
		return SourceStatic, nil
	case "dynamic", "dynamic-options":
		return SourceDynamic, nil
	case "users":
		return SourceUsers, nil
	case "channels":
		return SourceChannels, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSource, tag)
	}
}

// Strategy tells the search coordinator how a term is resolved.
type Strategy int

const (
	// StrategyLocal filters the base list in place.
	StrategyLocal Strategy = iota
	// StrategyRemote forwards the term to a Fetcher.
	StrategyRemote
)

// Query is a single request to a Fetcher.
type Query struct {
	Term    string
	Page    int
	PerPage int
}

// Page is a Fetcher response. More reports that a further page exists.
type Page struct {
	Items []Item
	More  bool
}

// Fetcher supplies items asynchronously for remote data sources.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) (Page, error)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc func(ctx context.Context, q Query) (Page, error)

func (f FetchFunc) Fetch(ctx context.Context, q Query) (Page, error) {
	return f(ctx, q)
}

// IdentityFunc extracts the selection key of an item.
type IdentityFunc func(Item) string

// Providers bundles every collaborator a route may need. Only the one
// matching the chosen source is required.
type Providers struct {
	Options  []DialogOption
	Dynamic  Fetcher
	Users    Fetcher
	Channels Fetcher
}

// Route is the resolved behaviour of a data source.
type Route struct {
	Source   Source
	Identity IdentityFunc
	Strategy Strategy
	// Base is the initial list. For dynamic options it holds the statically
	// supplied options shown until the first fetch resolves.
	Base    []Item
	Fetcher Fetcher
}

// NewRoute resolves a source to its identity rule and list provider.
func NewRoute(source Source, p Providers) (Route, error) {
	switch source {
	case SourceStatic:
		return Route{
			Source:   source,
			Identity: OptionIdentity,
			Strategy: StrategyLocal,
			Base:     OptionsToItems(p.Options),
		}, nil
	case SourceDynamic:
		if p.Dynamic == nil {
			return Route{}, fmt.Errorf("%w: %s needs a dynamic options fetcher", ErrMissingProvider, source)
		}
		return Route{
			Source:   source,
			Identity: OptionIdentity,
			Strategy: StrategyRemote,
			Base:     OptionsToItems(p.Options),
			Fetcher:  p.Dynamic,
		}, nil
	case SourceUsers:
		if p.Users == nil {
			return Route{}, fmt.Errorf("%w: %s needs a user directory", ErrMissingProvider, source)
		}
		return Route{Source: source, Identity: IDIdentity, Strategy: StrategyRemote, Fetcher: p.Users}, nil
	case SourceChannels:
		if p.Channels == nil {
			return Route{}, fmt.Errorf("%w: %s needs a channel directory", ErrMissingProvider, source)
		}
		return Route{Source: source, Identity: IDIdentity, Strategy: StrategyRemote, Fetcher: p.Channels}, nil
	default:
		return Route{}, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}
}

// OptionIdentity keys dialog options by value.
func OptionIdentity(item Item) string {
	if opt, ok := item.(DialogOption); ok {
		return opt.Value
	}
	return ""
}

// IDIdentity keys users and channels by id.
func IDIdentity(item Item) string {
	switch v := item.(type) {
	case UserProfile:
		return v.ID
	case Channel:
		return v.ID
	default:
		return ""
	}
}
