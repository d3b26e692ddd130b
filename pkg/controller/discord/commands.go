package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"

	"github.com/kizmotek/linearflow/pkg/domain/interfaces"
)

// command pairs a slash-command definition with its handler
type command struct {
	definition *discordgo.ApplicationCommand
	handle     func(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) error
}

// reportCommand is the one slash command this bot exposes. The definition is
// static; the table built from it in NewRouter is never mutated after startup.
var reportCommand = &discordgo.ApplicationCommand{
	Name:        "linearflow",
	Description: "Create a issue report",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "reportissue",
			Description: "Report an issue through our gateway triage",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "source",
					Description: "Source of the issue",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Quality Assurance", Value: "QA"},
						{Name: "Community Support", Value: "CS"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "title",
					Description: "Brief title of the issue",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "description",
					Description: "Detailed description of the issue",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "attachment1",
					Description: "Screenshot or video (optional)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "attachment2",
					Description: "Additional screenshot or video (optional)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "attachment3",
					Description: "Additional screenshot or video (optional)",
				},
			},
		},
	},
}

// Router dispatches interaction events to command handlers
type Router struct {
	commands map[string]command
	reportUC interfaces.ReportUseCase
}

// NewRouter builds the immutable command table
func NewRouter(reportUC interfaces.ReportUseCase) *Router {
	r := &Router{reportUC: reportUC}
	r.commands = map[string]command{
		reportCommand.Name: {definition: reportCommand, handle: r.handleReport},
	}
	return r
}

// Commands returns the number of registered commands
func (r *Router) Commands() int {
	return len(r.commands)
}

// Register creates every application command with Discord. The session must
// be open so that the bot user id is known.
func (r *Router) Register(s *discordgo.Session) error {
	for name, cmd := range r.commands {
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, "", cmd.definition); err != nil {
			return goerr.Wrap(err, "failed to register command", goerr.V("command", name))
		}
	}
	return nil
}
