package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"

	"github.com/kizmotek/linearflow/pkg/domain/model"
)

// Client wraps a discordgo session as the chat platform client. The session
// runs the gateway event loop; this type only adds the pieces the relay
// needs on top of it.
type Client struct {
	session *discordgo.Session
}

// New creates a new Discord client. The session is not connected yet; call
// Open once handlers are registered.
func New(token string) (*Client, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create discord session")
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	return &Client{session: session}, nil
}

// Session exposes the underlying session for handler registration
func (c *Client) Session() *discordgo.Session {
	return c.session
}

// Open connects the gateway websocket
func (c *Client) Open() error {
	if err := c.session.Open(); err != nil {
		return goerr.Wrap(err, "failed to open discord session")
	}
	return nil
}

// Close disconnects the gateway websocket
func (c *Client) Close() error {
	return c.session.Close()
}

// SendEmbed fetches the channel by id and posts the embed into it
func (c *Client) SendEmbed(ctx context.Context, channelID string, embed *model.NotificationEmbed) error {
	channel, err := c.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return goerr.Wrap(err, "failed to fetch channel", goerr.V("channel_id", channelID))
	}

	if _, err := c.session.ChannelMessageSendEmbed(channel.ID, ToMessageEmbed(embed), discordgo.WithContext(ctx)); err != nil {
		return goerr.Wrap(err, "failed to send message", goerr.V("channel_id", channelID))
	}

	return nil
}

// ToMessageEmbed converts the platform-agnostic embed to Discord's wire format
func ToMessageEmbed(embed *model.NotificationEmbed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       embed.Title,
		Description: embed.Description,
		Color:       embed.Color,
		URL:         embed.URL,
	}

	for _, field := range embed.Fields {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}

	if embed.Footer != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: embed.Footer}
	}
	if embed.Timestamp {
		out.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	return out
}
