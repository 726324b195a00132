// Package selector holds the UI-free state of the integration selector
// screen.
//
// A Route resolves the configured data source to its identity rule and list
// provider. A Store tracks multi-select choices keyed by that identity. A
// Search owns the search term and decides whether a term is filtered locally
// or forwarded to a Fetcher; every term change bumps a generation counter so
// debounce timers and fetch results issued for an older term are discarded
// no matter when they arrive. The Controller combines the three and
// completes the screen exactly once through the navigation Host.
package selector
