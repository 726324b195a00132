package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/atomicstack/integration-selector/internal/selector"
)

const fixtureYAML = `
options:
  - text: Apple
    value: a
dynamic:
  - text: Cherry
    value: c
  - text: Damson
    value: d
users:
  - id: u1
    username: alice
    first_name: Alice
  - id: u2
    username: bob
channels:
  - id: c1
    team_id: t1
    name: town-square
    display_name: Town Square
  - id: c2
    team_id: t2
    name: elsewhere
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))
	return path
}

func baseConfig(source string) Config {
	return Config{
		Source:      source,
		NameDisplay: string(selector.ShowUsername),
		Theme:       "dark",
		PerPage:     10,
	}
}

func openSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	s, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenStaticPrefersConfiguredOptions(t *testing.T) {
	cfg := baseConfig("static-options")
	cfg.Fixture = writeFixture(t)
	cfg.Options = []selector.DialogOption{{Value: "x", Text: "Xigua"}}

	s := openSession(t, cfg)
	assert.Equal(t, selector.SourceStatic, s.Route().Source)
	assert.Equal(t, []selector.Item{selector.DialogOption{Value: "x", Text: "Xigua"}}, s.Route().Base)

	cfg.Options = nil
	s = openSession(t, cfg)
	assert.Equal(t, []selector.Item{selector.DialogOption{Value: "a", Text: "Apple"}}, s.Route().Base)
}

func TestOpenDynamicUsesFixtureList(t *testing.T) {
	cfg := baseConfig("dynamic-options")
	cfg.Fixture = writeFixture(t)

	s := openSession(t, cfg)
	require.NotNil(t, s.Route().Fetcher)
	page, err := s.Route().Fetcher.Fetch(context.Background(), selector.Query{Term: "dam", PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, []selector.Item{selector.DialogOption{Value: "d", Text: "Damson"}}, page.Items)
}

func TestOpenDynamicWithoutProvider(t *testing.T) {
	_, err := Open(context.Background(), baseConfig("dynamic-options"))
	require.ErrorIs(t, err, selector.ErrMissingProvider)
	assert.Equal(t, 2, ExitCode(err))
}

func TestOpenUsersSeedsDirectory(t *testing.T) {
	cfg := baseConfig("users")
	cfg.Fixture = writeFixture(t)

	s := openSession(t, cfg)
	page, err := s.Route().Fetcher.Fetch(context.Background(), selector.Query{Term: "ali", PerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "u1", selector.IDIdentity(page.Items[0]))
}

func TestOpenChannelsRestrictedToTeam(t *testing.T) {
	cfg := baseConfig("channels")
	cfg.Fixture = writeFixture(t)
	cfg.TeamID = "t1"
	cfg.DBPath = filepath.Join(t.TempDir(), "directory.db")

	s := openSession(t, cfg)
	page, err := s.Route().Fetcher.Fetch(context.Background(), selector.Query{PerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "c1", selector.IDIdentity(page.Items[0]))
}

func TestOpenRejectsBadInput(t *testing.T) {
	_, err := Open(context.Background(), baseConfig("groups"))
	assert.ErrorIs(t, err, selector.ErrUnknownSource)

	cfg := baseConfig("static-options")
	cfg.Theme = "neon"
	_, err = Open(context.Background(), cfg)
	assert.Error(t, err)

	cfg = baseConfig("static-options")
	cfg.Fixture = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestSessionWritesSelection(t *testing.T) {
	cfg := baseConfig("static-options")
	cfg.Options = []selector.DialogOption{{Value: "a", Text: "Apple"}, {Value: "b", Text: "Banana"}}
	s := openSession(t, cfg)

	var out bytes.Buffer
	assert.ErrorIs(t, s.write(&out), ErrCancelled)
	assert.Empty(t, out.String())

	require.NoError(t, s.Model().Controller().Select(selector.DialogOption{Value: "b", Text: "Banana"}))
	require.NoError(t, s.write(&out))
	doc := out.String()
	assert.Equal(t, "static-options", gjson.Get(doc, "source").String())
	assert.False(t, gjson.Get(doc, "multi").Bool())
	assert.Equal(t, "b", gjson.Get(doc, "value").String())
	assert.Equal(t, "Banana", gjson.Get(doc, "item.text").String())
}

func TestEncodeMultiResult(t *testing.T) {
	route, err := selector.NewRoute(selector.SourceUsers, selector.Providers{
		Users: selector.FetchFunc(func(context.Context, selector.Query) (selector.Page, error) {
			return selector.Page{}, nil
		}),
	})
	require.NoError(t, err)

	data, err := EncodeResult(route, selector.Result{Multi: true, Items: []selector.Item{
		selector.UserProfile{ID: "u1", Username: "alice"},
		selector.UserProfile{ID: "u2", Username: "bob"},
	}})
	require.NoError(t, err)
	doc := gjson.ParseBytes(data)
	assert.Equal(t, "users", doc.Get("source").String())
	assert.True(t, doc.Get("multi").Bool())
	assert.Equal(t, `["u1","u2"]`, doc.Get("values").Raw)
	assert.Equal(t, "bob", doc.Get("items.1.username").String())

	data, err = EncodeResult(route, selector.Result{Multi: true, Items: []selector.Item{}})
	require.NoError(t, err)
	assert.Equal(t, `[]`, gjson.GetBytes(data, "values").Raw)
	assert.Equal(t, `[]`, gjson.GetBytes(data, "items").Raw)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 130, ExitCode(ErrCancelled))
	assert.Equal(t, 2, ExitCode(fmt.Errorf("wrap: %w", selector.ErrUnknownSource)))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, "Cancelled", Describe(ErrCancelled))
	assert.Equal(t, "Error: boom", Describe(errors.New("boom")))
}
