package directory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/integration-selector/internal/selector"
)

func seededDirectory(t *testing.T) *Directory {
	t.Helper()
	d, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	users := []selector.UserProfile{
		{ID: "u1", Username: "alice", FirstName: "Alice", LastName: "Liddell"},
		{ID: "u2", Username: "bob", Nickname: "bobby"},
		{ID: "u3", Username: "carol", Email: "carol@example.com"},
		{ID: "u4", Username: "dave", DeleteAt: 1700000000000},
		{ID: "u5", Username: "under_score"},
	}
	channels := []selector.Channel{
		{ID: "c1", TeamID: "t1", Name: "town-square", DisplayName: "Town Square"},
		{ID: "c2", TeamID: "t1", Name: "off-topic", DisplayName: "Off-Topic"},
		{ID: "c3", TeamID: "t2", Name: "town-square", DisplayName: "Town Square"},
	}
	require.NoError(t, d.Seed(context.Background(), users, channels))
	return d
}

func usernames(users []selector.UserProfile) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Username
	}
	return out
}

func TestSearchUsersHidesDeleted(t *testing.T) {
	d := seededDirectory(t)
	users, more, err := d.SearchUsers(context.Background(), "", 0, 10)
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, []string{"alice", "bob", "carol", "under_score"}, usernames(users))
}

func TestSearchUsersMatchesProfileFields(t *testing.T) {
	d := seededDirectory(t)
	ctx := context.Background()

	tests := []struct {
		term string
		want []string
	}{
		{"LIDD", []string{"alice"}},
		{"bobby", []string{"bob"}},
		{"example.com", []string{"carol"}},
		{"dave", []string{}},
		{"_", []string{"under_score"}},
		{"%", []string{}},
	}
	for _, tt := range tests {
		users, _, err := d.SearchUsers(ctx, tt.term, 0, 10)
		require.NoError(t, err, tt.term)
		assert.Equal(t, tt.want, usernames(users), tt.term)
	}
}

func TestSearchUsersPaging(t *testing.T) {
	d := seededDirectory(t)
	ctx := context.Background()

	first, more, err := d.SearchUsers(ctx, "", 0, 2)
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, []string{"alice", "bob"}, usernames(first))

	second, more, err := d.SearchUsers(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.False(t, more)
	assert.Equal(t, []string{"carol", "under_score"}, usernames(second))
}

func TestSearchChannelsLimitedToTeam(t *testing.T) {
	d := seededDirectory(t)
	channels, more, err := d.SearchChannels(context.Background(), "t1", "", 0, 10)
	require.NoError(t, err)
	assert.False(t, more)
	require.Len(t, channels, 2)
	assert.Equal(t, "c2", channels[0].ID)
	assert.Equal(t, "c1", channels[1].ID)

	channels, _, err = d.SearchChannels(context.Background(), "t2", "town", 0, 10)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, "c3", channels[0].ID)
}

func TestSeedUpserts(t *testing.T) {
	d := seededDirectory(t)
	ctx := context.Background()
	require.NoError(t, d.Seed(ctx, []selector.UserProfile{{ID: "u2", Username: "robert"}}, nil))

	users, _, err := d.SearchUsers(ctx, "robert", 0, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u2", users[0].ID)

	err = d.Seed(ctx, []selector.UserProfile{{Username: "nobody"}}, nil)
	assert.Error(t, err)
}

func TestFetchersWrapItems(t *testing.T) {
	d := seededDirectory(t)
	ctx := context.Background()

	page, err := d.Users().Fetch(ctx, selector.Query{Term: "a", PerPage: 10})
	require.NoError(t, err)
	require.NotEmpty(t, page.Items)
	_, ok := page.Items[0].(selector.UserProfile)
	assert.True(t, ok)

	page, err = d.Channels("t1").Fetch(ctx, selector.Query{Term: "off"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "c2", selector.IDIdentity(page.Items[0]))
}

func TestOpenFileReusesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.db")
	d, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, d.Seed(context.Background(), []selector.UserProfile{{ID: "u1", Username: "alice"}}, nil))
	require.NoError(t, d.Close())

	d, err = Open(path)
	require.NoError(t, err)
	defer d.Close()
	users, _, err := d.SearchUsers(context.Background(), "", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, usernames(users))
}
