package usecase

import (
	"fmt"
	"strings"

	"github.com/kizmotek/linearflow/pkg/domain/model"
)

// Embed colors follow the tracker's brand purple for creations, orange for
// status changes, green for comments and red for failures.
const (
	colorIssue   = 0x5E6AD2
	colorUpdate  = 0xFFA500
	colorComment = 0x00FF00
	colorError   = 0xFF0000
)

const commentPreviewLength = 200

// PriorityLabel maps the tracker's numeric priority to a display label.
// Total over 0..4; anything else renders as "Unknown".
func PriorityLabel(priority int) string {
	switch priority {
	case 0:
		return "⚪ No priority"
	case 1:
		return "🔥 Urgent"
	case 2:
		return "⚠️ High"
	case 3:
		return "📋 Medium"
	case 4:
		return "📝 Low"
	default:
		return "Unknown"
	}
}

// BuildIssueDescription renders the composite issue description: source,
// user text, then one Markdown entry per attachment in submission order.
// Images embed inline, everything else becomes a numbered link.
func BuildIssueDescription(report *model.IssueReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Source:** %s\n**User Description:** %s\n", report.Source, report.Description)

	if len(report.Attachments) > 0 {
		b.WriteString("\n**Attachments:**\n\n")
		for i, att := range report.Attachments {
			if att.IsImage() {
				fmt.Fprintf(&b, "![%s](%s)\n\n", att.Name, att.URL)
			} else {
				fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, att.Name, att.URL)
			}
		}
	}

	return b.String()
}

// TruncateCommentBody cuts the body to the preview length. The ellipsis is
// appended unconditionally, even for short bodies.
func TruncateCommentBody(body string) string {
	runes := []rune(body)
	if len(runes) > commentPreviewLength {
		runes = runes[:commentPreviewLength]
	}
	return string(runes) + "..."
}

func reportSuccessEmbed(issue *model.TrackerIssue, report *model.IssueReport, rctx *model.ReportContext) *model.NotificationEmbed {
	description := report.Title
	if issue.Identifier != "" {
		description = fmt.Sprintf("**%s** - %s", issue.Identifier, report.Title)
	}

	embed := &model.NotificationEmbed{
		Title:       "Bug Report Created",
		Description: description,
		Color:       colorIssue,
		URL:         issue.URL,
		Fields: []model.EmbedField{
			{Name: "Reported by", Value: rctx.AuthorTag, Inline: true},
			{Name: "Team", Value: "Gateway", Inline: true},
			{Name: "Source", Value: string(report.Source), Inline: true},
			{Name: "Status", Value: "Triage", Inline: true},
		},
		Footer:    "LinearFlow Bot",
		Timestamp: true,
	}

	if len(report.Attachments) > 0 {
		names := make([]string, 0, len(report.Attachments))
		for _, att := range report.Attachments {
			names = append(names, "📎 "+att.Name)
		}
		embed.Fields = append(embed.Fields, model.EmbedField{
			Name:  "Attachments",
			Value: strings.Join(names, "\n"),
		})
	}

	return embed
}

func configErrorEmbed() *model.NotificationEmbed {
	return &model.NotificationEmbed{
		Title:       "Configuration Error",
		Description: "Gateway team not configured. Please contact an admin.",
		Color:       colorError,
		Timestamp:   true,
	}
}

func reportFailureEmbed() *model.NotificationEmbed {
	return &model.NotificationEmbed{
		Title:       "Error",
		Description: "Failed to create bug report. Please try again later.",
		Color:       colorError,
		Timestamp:   true,
	}
}

func issueCreatedEmbed(issue *model.IssuePayload) *model.NotificationEmbed {
	state := "Unknown"
	if issue.State != nil {
		state = issue.State.Name
	}
	assignee := "Unassigned"
	if issue.Assignee != nil {
		assignee = issue.Assignee.Name
	}

	return &model.NotificationEmbed{
		Title:       fmt.Sprintf("🆕 New Issue: %s", issue.Identifier),
		Description: issue.Title,
		Color:       colorIssue,
		URL:         issue.URL,
		Fields: []model.EmbedField{
			{Name: "Status", Value: state, Inline: true},
			{Name: "Priority", Value: PriorityLabel(issue.Priority), Inline: true},
			{Name: "Assignee", Value: assignee, Inline: true},
		},
		Timestamp: true,
	}
}

func issueUpdatedEmbed(issue *model.IssuePayload) *model.NotificationEmbed {
	state := "Unknown"
	if issue.State != nil {
		state = issue.State.Name
	}

	return &model.NotificationEmbed{
		Title:       fmt.Sprintf("Issue Updated: %s", issue.Identifier),
		Description: issue.Title,
		Color:       colorUpdate,
		URL:         issue.URL,
		Fields: []model.EmbedField{
			{Name: "New Status", Value: state, Inline: true},
		},
		Timestamp: true,
	}
}

func commentCreatedEmbed(comment *model.CommentPayload) *model.NotificationEmbed {
	identifier := "Unknown"
	issueURL := ""
	if comment.Issue != nil {
		identifier = comment.Issue.Identifier
		issueURL = comment.Issue.URL
	}
	author := "Unknown"
	if comment.User != nil {
		author = comment.User.Name
	}

	return &model.NotificationEmbed{
		Title:       fmt.Sprintf("💬 New Comment on %s", identifier),
		Description: TruncateCommentBody(comment.Body),
		Color:       colorComment,
		URL:         issueURL,
		Fields: []model.EmbedField{
			{Name: "Author", Value: author, Inline: true},
		},
		Timestamp: true,
	}
}
