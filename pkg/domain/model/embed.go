package model

// EmbedField is one labeled value inside a notification embed
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// NotificationEmbed is a chat-platform-agnostic rich message. It is a pure
// projection of a report or webhook event and has no identity of its own;
// the chat client converts it to the platform's wire format.
type NotificationEmbed struct {
	Title       string
	Description string
	Color       int
	URL         string
	Fields      []EmbedField
	Footer      string
	Timestamp   bool
}
