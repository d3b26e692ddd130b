package config

import "github.com/urfave/cli/v3"

// Discord holds chat platform configuration
type Discord struct {
	Token           string
	IssuesChannelID string
}

// Flags returns CLI flags for Discord configuration
func (c *Discord) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "discord-token",
			Usage:       "Discord bot token",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("DISCORD_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "discord-issues-channel",
			Usage:       "Channel id for issue notifications",
			Required:    true,
			Destination: &c.IssuesChannelID,
			Sources:     cli.EnvVars("DISCORD_CHANNEL_ISSUES"),
		},
	}
}
