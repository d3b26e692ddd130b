package config

import "github.com/urfave/cli/v3"

// Linear holds issue tracker configuration
type Linear struct {
	APIKey        string
	GatewayTeamID string
	WebhookSecret string
}

// Flags returns CLI flags for Linear configuration. The gateway team id is
// deliberately optional: without it the report command degrades to a
// configuration-error reply instead of refusing to start.
func (c *Linear) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "linear-api-key",
			Usage:       "Linear API key",
			Required:    true,
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("LINEAR_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "linear-team-gateway",
			Usage:       "Gateway team id to route issues to and filter webhook events by",
			Destination: &c.GatewayTeamID,
			Sources:     cli.EnvVars("LINEAR_TEAM_GATEWAY"),
		},
		&cli.StringFlag{
			Name:        "linear-webhook-secret",
			Usage:       "Webhook signing secret (signature check skipped when empty)",
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("LINEAR_WEBHOOK_SECRET"),
		},
	}
}
