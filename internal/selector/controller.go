package selector

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SubmitActionID identifies the multi-select submit header action.
const SubmitActionID = "submit-integration-selector-multiselect"

var (
	// ErrClosed is returned once the screen completed or was cancelled.
	ErrClosed = errors.New("selector closed")
	// ErrNotMultiSelect is returned by Submit on a single-select screen.
	ErrNotMultiSelect = errors.New("selector is not multi-select")
)

// Action is a header button registered with the navigation host.
type Action struct {
	ID      string
	Label   string
	Enabled bool
}

// Host is the navigation surface the selector runs in.
type Host interface {
	// Pop closes the selector screen.
	Pop()
	// SetHeaderAction registers the right-hand header button.
	SetHeaderAction(Action)
}

// Result is handed to the completion callback. Single-select results carry
// Item; multi-select results carry Items, which is never nil.
type Result struct {
	Multi bool
	Item  Item
	Items []Item
}

// Config describes one selector screen.
type Config struct {
	// ID identifies the screen instance; a random one is generated when empty.
	ID    string
	Route Route
	Multi bool
	// Selected holds previously persisted identities for multi-select.
	Selected   []string
	Host       Host
	OnComplete func(Result)
}

// Controller owns the selection and search state of one screen and decides
// when the screen completes.
type Controller struct {
	id         string
	route      Route
	multi      bool
	store      *Store
	search     *Search
	host       Host
	onComplete func(Result)
	done       bool
}

// NewController validates cfg and builds the screen state. In multi-select
// mode the submit action is registered with the host.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Route.Identity == nil {
		return nil, fmt.Errorf("%w: route for %s has no identity rule", ErrUnknownSource, cfg.Route.Source)
	}
	if cfg.Host == nil {
		return nil, errors.New("selector: navigation host is required")
	}
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	c := &Controller{
		id:         id,
		route:      cfg.Route,
		multi:      cfg.Multi,
		store:      NewStore(cfg.Route.Identity),
		search:     NewSearch(cfg.Route),
		host:       cfg.Host,
		onComplete: cfg.OnComplete,
	}
	if c.multi {
		c.store.Hydrate(cfg.Selected, cfg.Route.Base)
		c.host.SetHeaderAction(Action{ID: SubmitActionID, Label: "Done", Enabled: true})
	}
	return c, nil
}

// Select handles a tap on an item. Single-select completes immediately with
// the item; multi-select toggles it.
func (c *Controller) Select(item Item) error {
	if c.done {
		return ErrClosed
	}
	if !c.multi {
		c.complete(Result{Item: item})
		return nil
	}
	c.store.Toggle(item)
	return nil
}

// Remove drops an item from the multi-select selection.
func (c *Controller) Remove(item Item) error {
	if c.done {
		return ErrClosed
	}
	c.store.Remove(item)
	return nil
}

// Submit completes a multi-select screen with the selected items in the
// order they were added.
func (c *Controller) Submit() error {
	if c.done {
		return ErrClosed
	}
	if !c.multi {
		return ErrNotMultiSelect
	}
	c.complete(Result{Multi: true, Items: c.store.Values()})
	return nil
}

// Cancel closes the screen without completing.
func (c *Controller) Cancel() {
	if c.done {
		return
	}
	c.done = true
	c.search.Close()
	c.host.Pop()
}

func (c *Controller) complete(res Result) {
	c.done = true
	c.search.Close()
	if c.onComplete != nil {
		c.onComplete(res)
	}
	c.host.Pop()
}

// Closed reports whether the screen completed or was cancelled.
func (c *Controller) Closed() bool { return c.done }

// ID returns the screen instance id.
func (c *Controller) ID() string { return c.id }

// Multi reports whether the screen is multi-select.
func (c *Controller) Multi() bool { return c.multi }

// Route returns the resolved data source route.
func (c *Controller) Route() Route { return c.route }

// Store returns the selection store.
func (c *Controller) Store() *Store { return c.store }

// Search returns the search coordinator.
func (c *Controller) Search() *Search { return c.search }

// Identity extracts the selection key of item for the active route.
func (c *Controller) Identity(item Item) string { return c.route.Identity(item) }
