package model

import (
	"net/url"
)

// ForumDesc is a forum as it appears in a listing row, either on the main
// page (where a category header applies) or as a subforum of another forum
// (where Category is empty).
type ForumDesc struct {
	Name     string
	Link     *url.URL
	Subtext  string
	Category string

	LastMessageName string
	LastMessageLink *url.URL
	LastMessageDate string

	TopicCount   *int
	MessageCount *int
}

// Forum is a fully loaded forum page. The id comes from the `id` query
// parameter of the page's canonical link.
type Forum struct {
	ID   int
	Name string
	Link *url.URL

	// Writable is true when the page offers a "post new topic" link.
	Writable bool

	PageCount   int
	CurrentPage int

	Subforums []ForumDesc
	Topics    []ForumTopicDesc
}

// ForumTopicDesc is a topic as it appears in a forum or search listing row.
// ReplyCount/ViewCount are nil when the listing hides them, e.g. for moved
// topics the forum prints a dash instead of a number.
type ForumTopicDesc struct {
	Name string
	Link *url.URL

	Sticky bool
	Closed bool

	ReplyCount *int
	ViewCount  *int
	PageCount  int

	LastMessageLink *url.URL
	LastMessageDate string
	NewMessageLink  *url.URL
}

// ForumTopic is a fully loaded topic page with the messages of the current
// page only.
type ForumTopic struct {
	ID   int
	Name string
	Link *url.URL

	// RefererLink is the URL that was actually used to reach this page,
	// which differs from Link when the topic was opened through a custom
	// link such as a "jump to unread" pointer.
	RefererLink *url.URL

	Writable bool

	// FavoriteLink/SubscriptionLink have their `action` query parameter
	// stripped so the same link serves both directions of the toggle.
	// They are nil when the board offers no such action, e.g. when the
	// session is anonymous.
	IsFavorite       bool
	FavoriteLink     *url.URL
	IsSubscribed     bool
	SubscriptionLink *url.URL

	PageCount   int
	CurrentPage int

	Messages []ForumMessage
}

// ForumMessage is a single message of a topic. The id comes from the `pid`
// query parameter of the message's own permalink, the index is the printed
// "#N" ordinal and is unique within the topic only.
type ForumMessage struct {
	ID    int
	Index int
	Link  *url.URL

	Author          string
	AuthorAvatarURL *url.URL

	// CreatedDate is kept as the display string the forum prints; recent
	// dates read "Today 12:34" and are not parseable as timestamps.
	CreatedDate string

	// Content is the message body HTML after spoiler normalization. It is
	// an opaque payload as far as this engine is concerned, rendering is
	// the consumer's business.
	Content string
}

// SearchResults is a named paginated listing: favorites, replies, new or
// recent topics, or keyword search over topics or messages.
type SearchResults[T any] struct {
	Name string
	Link *url.URL

	PageCount   int
	CurrentPage int

	// Results holds only the entries of CurrentPage.
	Results []T
}
