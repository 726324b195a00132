package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/integration-selector/internal/selector"
)

const fixtureYAML = `
options:
  - text: Apple
    value: a
  - text: Banana
    value: b
dynamic:
  - text: Cherry
    value: c
users:
  - id: u1
    username: alice
    first_name: Alice
channels:
  - id: c1
    team_id: t1
    name: town-square
    display_name: Town Square
`

func values(items []selector.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = selector.OptionIdentity(item)
	}
	return out
}

func TestParseFixture(t *testing.T) {
	f, err := ParseFixture([]byte(fixtureYAML))
	require.NoError(t, err)
	assert.Equal(t, []selector.DialogOption{{Text: "Apple", Value: "a"}, {Text: "Banana", Value: "b"}}, f.Options)
	assert.Len(t, f.Dynamic, 1)
	require.Len(t, f.Users, 1)
	assert.Equal(t, "Alice", f.Users[0].FirstName)
	require.Len(t, f.Channels, 1)
	assert.Equal(t, "t1", f.Channels[0].TeamID)
}

func TestParseFixtureRejectsOptionsWithoutValue(t *testing.T) {
	_, err := ParseFixture([]byte("options:\n  - text: Nameless\n"))
	assert.Error(t, err)
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))
	f, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Len(t, f.Options, 2)

	_, err = LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFixtureJSONC(t *testing.T) {
	const doc = `{
  // shown before the first fetch
  "options": [
    {"text": "Apple", "value": "a"},
  ],
  "users": [{"id": "u1", "username": "alice"}],
}`
	path := filepath.Join(t.TempDir(), "fixture.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	f, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, []selector.DialogOption{{Text: "Apple", Value: "a"}}, f.Options)
	require.Len(t, f.Users, 1)
	assert.Equal(t, "alice", f.Users[0].Username)
}

func TestStaticFiltersAndPages(t *testing.T) {
	s := NewStatic([]selector.DialogOption{
		{Value: "a", Text: "Apple"},
		{Value: "b", Text: "Banana"},
		{Value: "c", Text: "Cantaloupe"},
	})
	ctx := context.Background()

	page, err := s.Fetch(ctx, selector.Query{Term: "an"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, values(page.Items))

	page, err = s.Fetch(ctx, selector.Query{PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, values(page.Items))
	assert.True(t, page.More)

	page, err = s.Fetch(ctx, selector.Query{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, values(page.Items))
	assert.False(t, page.More)

	page, err = s.Fetch(ctx, selector.Query{Page: 5, PerPage: 2})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestStaticHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStatic(nil).Fetch(ctx, selector.Query{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseOptions(t *testing.T) {
	page, err := ParseOptions([]byte(`[{"value":"a","text":"Apple"},{"value":"b","label":"Banana"},{"value":"c"},{"text":"skipped"}]`), "")
	require.NoError(t, err)
	assert.Equal(t, []selector.Item{
		selector.DialogOption{Value: "a", Text: "Apple"},
		selector.DialogOption{Value: "b", Text: "Banana"},
		selector.DialogOption{Value: "c", Text: "c"},
	}, page.Items)
	assert.False(t, page.More)

	page, err = ParseOptions([]byte(`{"data":{"items":[{"value":"x","text":"X"}]},"has_more":true}`), "data.items")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, values(page.Items))
	assert.True(t, page.More)

	_, err = ParseOptions([]byte(`not json`), "")
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = ParseOptions([]byte(`{"items":{}}`), "items")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCommandPassesTermThroughEnvironment(t *testing.T) {
	c, err := NewCommand(`sh -c 'printf "%s" "[{\"value\":\"$INTEGRATION_SELECTOR_TERM\",\"text\":\"page $INTEGRATION_SELECTOR_PAGE\"}]"'`, "", 0)
	require.NoError(t, err)
	page, err := c.Fetch(context.Background(), selector.Query{Term: "abc", Page: 2})
	require.NoError(t, err)
	assert.Equal(t, []selector.Item{selector.DialogOption{Value: "abc", Text: "page 2"}}, page.Items)
}

func TestCommandSubstitutesPlaceholder(t *testing.T) {
	c, err := NewCommand(`echo '[{"value":"{term}"}]'`, "", 0)
	require.NoError(t, err)
	page, err := c.Fetch(context.Background(), selector.Query{Term: "xyz"})
	require.NoError(t, err)
	assert.Equal(t, []string{"xyz"}, values(page.Items))
}

func TestCommandReportsFailure(t *testing.T) {
	c, err := NewCommand(`sh -c 'echo boom >&2; exit 3'`, "", 0)
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), selector.Query{Term: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestNewCommandRejectsEmptyCommand(t *testing.T) {
	_, err := NewCommand("   ", "", 0)
	assert.Error(t, err)
	_, err = NewCommand(`echo 'unterminated`, "", 0)
	assert.Error(t, err)
}

func TestHTTPQueriesEndpoint(t *testing.T) {
	var gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"value":"u","text":"Umbrella"}],"has_more":true}`))
	}))
	defer srv.Close()

	h, err := NewHTTP(srv.URL+"/options?kind=fruit", "items", time.Second, 0)
	require.NoError(t, err)
	page, err := h.Fetch(context.Background(), selector.Query{Term: "um", Page: 1, PerPage: 25})
	require.NoError(t, err)
	assert.Equal(t, []string{"u"}, values(page.Items))
	assert.True(t, page.More)

	q := gotQuery.Load().(url.Values)
	assert.Equal(t, []string{"um"}, q["term"])
	assert.Equal(t, []string{"1"}, q["page"])
	assert.Equal(t, []string{"25"}, q["per_page"])
	assert.Equal(t, []string{"fruit"}, q["kind"])
}

func TestHTTPReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	h, err := NewHTTP(srv.URL, "", time.Second, 0)
	require.NoError(t, err)
	_, err = h.Fetch(context.Background(), selector.Query{Term: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNewHTTPRejectsBadEndpoint(t *testing.T) {
	_, err := NewHTTP("ftp://example.com", "", time.Second, 0)
	assert.Error(t, err)
}

type blockingFetcher struct {
	calls   atomic.Int32
	release chan struct{}
}

func (b *blockingFetcher) Fetch(ctx context.Context, q selector.Query) (selector.Page, error) {
	b.calls.Add(1)
	select {
	case <-b.release:
	case <-ctx.Done():
		return selector.Page{}, ctx.Err()
	}
	return selector.Page{Items: []selector.Item{selector.DialogOption{Value: q.Term, Text: q.Term}}}, nil
}

func TestDedupeSharesInFlightFetch(t *testing.T) {
	next := &blockingFetcher{release: make(chan struct{})}
	d := NewDedupe(next, time.Second)

	var wg sync.WaitGroup
	results := make([]selector.Page, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			page, err := d.Fetch(context.Background(), selector.Query{Term: "a"})
			if err == nil {
				results[i] = page
			}
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(next.release)
	wg.Wait()

	assert.Equal(t, int32(1), next.calls.Load())
	for _, page := range results {
		assert.Equal(t, []string{"a"}, values(page.Items))
	}
}

func TestDedupeCallerCancelDoesNotFailOthers(t *testing.T) {
	next := &blockingFetcher{release: make(chan struct{})}
	d := NewDedupe(next, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		_, err := d.Fetch(ctx, selector.Query{Term: "b"})
		errs <- err
	}()
	time.Sleep(20 * time.Millisecond)

	done := make(chan selector.Page, 1)
	go func() {
		page, _ := d.Fetch(context.Background(), selector.Query{Term: "b"})
		done <- page
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	if err := <-errs; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled caller to return context.Canceled, got %v", err)
	}
	close(next.release)
	page := <-done
	assert.Equal(t, []string{"b"}, values(page.Items))
}
