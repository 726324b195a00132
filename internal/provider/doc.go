// Package provider supplies selector.Fetcher implementations for dynamic
// dialog options: an in-process list loaded from a YAML fixture, an external
// command, and an HTTP endpoint. Dedupe collapses identical concurrent
// queries against any of them.
package provider
