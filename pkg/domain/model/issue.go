package model

// PriorityMedium is the tracker's numeric value for medium priority.
// All issues created through the report command use it.
const PriorityMedium = 3

// TrackerIssue is a read-only projection of an issue owned by the tracker.
// Identifier is the human-readable team-prefixed code (e.g. "INK-17") and
// may be empty immediately after creation.
type TrackerIssue struct {
	ID         string
	Identifier string
	Title      string
	URL        string
}

// IssueCreate is the input for the tracker's issue creation operation
type IssueCreate struct {
	TeamID      string
	Title       string
	Description string
	Priority    int
}

// AttachmentCreate is the input for attaching a link record to a tracker issue
type AttachmentCreate struct {
	IssueID  string
	Title    string
	URL      string
	Subtitle string
}
