package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/kizmotek/linearflow/pkg/domain/model"
	discordinfra "github.com/kizmotek/linearflow/pkg/infra/discord"
	"github.com/kizmotek/linearflow/pkg/utils/async"
)

// HandleInteraction returns the gateway handler for interaction events. Each
// command runs through async.Dispatch so a panicking or failing handler is
// logged and answered instead of taking down the event loop.
func (r *Router) HandleInteraction(ctx context.Context) func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionApplicationCommand {
			return
		}

		logger := ctxlog.From(ctx)
		name := ic.ApplicationCommandData().Name

		cmd, ok := r.commands[name]
		if !ok {
			logger.Error("no matching command", "name", name)
			return
		}

		async.Dispatch(ctx, func(ctx context.Context) error {
			if err := cmd.handle(ctx, s, ic); err != nil {
				r.replyFailure(ctx, s, ic)
				return goerr.Wrap(err, "command execution failed", goerr.V("command", name))
			}
			return nil
		})
	}
}

// replyFailure sends the generic ephemeral error so the interaction never
// times out unanswered. If the reply was already deferred the respond call
// fails; fall back to editing.
func (r *Router) replyFailure(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	content := "There was an error executing this command!"

	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		if _, err := s.InteractionResponseEdit(ic.Interaction, &discordgo.WebhookEdit{
			Content: &content,
		}, discordgo.WithContext(ctx)); err != nil {
			ctxlog.From(ctx).Warn("failed to deliver error reply", "error", err)
		}
	}
}

func (r *Router) handleReport(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) error {
	data := ic.ApplicationCommandData()
	if len(data.Options) == 0 || data.Options[0].Name != "reportissue" {
		return goerr.New("unknown subcommand", goerr.V("command", data.Name))
	}

	// Tracker calls can outlast the interaction response window, so
	// acknowledge first and edit the reply when done.
	if err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx)); err != nil {
		return goerr.Wrap(err, "failed to defer reply")
	}

	report := parseReport(data, data.Options[0])
	rctx := &model.ReportContext{
		ChannelName: r.channelName(ctx, s, ic.ChannelID),
		AuthorTag:   authorTag(ic),
		MessageLink: messageLink(ic.GuildID, ic.ChannelID, ic.ID),
	}

	embed := r.reportUC.ProcessReport(ctx, report, rctx)

	embeds := []*discordgo.MessageEmbed{discordinfra.ToMessageEmbed(embed)}
	if _, err := s.InteractionResponseEdit(ic.Interaction, &discordgo.WebhookEdit{
		Embeds: &embeds,
	}, discordgo.WithContext(ctx)); err != nil {
		return goerr.Wrap(err, "failed to edit reply")
	}

	return nil
}

// parseReport extracts the report from the subcommand options. Attachment
// options resolve through the interaction's resolved data and keep their
// numbered submission order.
func parseReport(data discordgo.ApplicationCommandInteractionData, sub *discordgo.ApplicationCommandInteractionDataOption) *model.IssueReport {
	report := &model.IssueReport{}

	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		byName[opt.Name] = opt
	}

	if opt, ok := byName["source"]; ok {
		report.Source = model.ReportSource(opt.StringValue())
	}
	if opt, ok := byName["title"]; ok {
		report.Title = opt.StringValue()
	}
	if opt, ok := byName["description"]; ok {
		report.Description = opt.StringValue()
	}

	for i := 1; i <= model.MaxReportAttachments; i++ {
		opt, ok := byName[fmt.Sprintf("attachment%d", i)]
		if !ok || data.Resolved == nil {
			continue
		}
		id, ok := opt.Value.(string)
		if !ok {
			continue
		}
		att, ok := data.Resolved.Attachments[id]
		if !ok {
			continue
		}
		report.Attachments = append(report.Attachments, model.Attachment{
			Name:        att.Filename,
			URL:         att.URL,
			ContentType: att.ContentType,
		})
	}

	return report
}

// channelName looks up the channel for the back-link subtitle. A failed
// lookup is not fatal; the use case falls back to "unknown".
func (r *Router) channelName(ctx context.Context, s *discordgo.Session, channelID string) string {
	if channel, err := s.State.Channel(channelID); err == nil {
		return channel.Name
	}
	channel, err := s.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		ctxlog.From(ctx).Warn("failed to fetch channel name", "channel_id", channelID, "error", err)
		return ""
	}
	return channel.Name
}

// authorTag returns the reporter's tag, wherever the interaction came from
func authorTag(ic *discordgo.InteractionCreate) string {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User.String()
	}
	if ic.User != nil {
		return ic.User.String()
	}
	return "unknown"
}

// messageLink builds the jump URL for the originating interaction
func messageLink(guildID, channelID, interactionID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, interactionID)
}
