package selector

import "strings"

// Item is one selectable entry. The set of implementations is closed:
// DialogOption, UserProfile and Channel.
type Item interface {
	// Label is the text shown for the item and matched by local search.
	Label() string
	isItem()
}

// DialogOption is a static or dynamically fetched interactive dialog option.
type DialogOption struct {
	Text  string `json:"text" yaml:"text"`
	Value string `json:"value" yaml:"value"`
}

func (o DialogOption) Label() string { return o.Text }
func (DialogOption) isItem()         {}

// UserProfile is a member of the server user directory.
type UserProfile struct {
	ID        string `json:"id" yaml:"id"`
	Username  string `json:"username" yaml:"username"`
	FirstName string `json:"first_name,omitempty" yaml:"first_name"`
	LastName  string `json:"last_name,omitempty" yaml:"last_name"`
	Nickname  string `json:"nickname,omitempty" yaml:"nickname"`
	Email     string `json:"email,omitempty" yaml:"email"`
	DeleteAt  int64  `json:"delete_at,omitempty" yaml:"delete_at"`
}

func (u UserProfile) Label() string { return u.Username }
func (UserProfile) isItem()         {}

// FullName joins first and last name, skipping empty parts.
func (u UserProfile) FullName() string {
	return strings.TrimSpace(strings.Join([]string{u.FirstName, u.LastName}, " "))
}

// Channel is a team channel.
type Channel struct {
	ID          string `json:"id" yaml:"id"`
	TeamID      string `json:"team_id" yaml:"team_id"`
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Type        string `json:"type,omitempty" yaml:"type"`
}

func (c Channel) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}
func (Channel) isItem() {}

// NameDisplay selects how user profiles are rendered.
type NameDisplay string

const (
	ShowUsername         NameDisplay = "username"
	ShowFullName         NameDisplay = "full_name"
	ShowNicknameFullName NameDisplay = "nickname_full_name"
)

// DisplayName renders a user according to the teammate name display setting,
// falling back to the username when the preferred fields are empty.
func (u UserProfile) DisplayName(mode NameDisplay) string {
	switch mode {
	case ShowNicknameFullName:
		if u.Nickname != "" {
			return u.Nickname
		}
		if name := u.FullName(); name != "" {
			return name
		}
	case ShowFullName:
		if name := u.FullName(); name != "" {
			return name
		}
	}
	return u.Username
}

// OptionsToItems converts dialog options to items preserving order.
func OptionsToItems(options []DialogOption) []Item {
	items := make([]Item, len(options))
	for i, opt := range options {
		items[i] = opt
	}
	return items
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
