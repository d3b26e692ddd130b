package model

import "strings"

// ReportSource represents where a bug report originated from
type ReportSource string

const (
	SourceQA               ReportSource = "QA"
	SourceCommunitySupport ReportSource = "CS"
)

// MaxReportAttachments is the number of file options the report command exposes
const MaxReportAttachments = 3

// Attachment is a file submitted alongside a bug report
type Attachment struct {
	Name        string
	URL         string
	ContentType string
}

// IsImage reports whether the attachment can be rendered inline as Markdown
func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image/")
}

// IssueReport is a user-submitted bug report, consumed once and discarded
type IssueReport struct {
	Source      ReportSource
	Title       string
	Description string
	Attachments []Attachment
}

// ReportContext carries who and where the report came from
type ReportContext struct {
	ChannelName string
	AuthorTag   string
	MessageLink string
}
