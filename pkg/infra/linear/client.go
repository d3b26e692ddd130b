package linear

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shurcooL/graphql"

	"github.com/kizmotek/linearflow/pkg/domain/interfaces"
	"github.com/kizmotek/linearflow/pkg/domain/model"
)

const defaultEndpoint = "https://api.linear.app/graphql"

type config struct {
	endpoint string
	base     http.RoundTripper
}

// Option is a functional option for client configuration
type Option func(*config)

// WithEndpoint overrides the GraphQL endpoint, mainly for tests
func WithEndpoint(endpoint string) Option {
	return func(c *config) {
		c.endpoint = endpoint
	}
}

// WithTransport overrides the underlying HTTP transport
func WithTransport(rt http.RoundTripper) Option {
	return func(c *config) {
		c.base = rt
	}
}

type client struct {
	gql *graphql.Client
}

// New creates a TrackerClient over Linear's GraphQL API. The API key is
// injected on every request via the transport; Linear expects it raw in the
// Authorization header, not as a Bearer token.
func New(apiKey string, opts ...Option) interfaces.TrackerClient {
	cfg := &config{
		endpoint: defaultEndpoint,
		base:     http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := &http.Client{
		Transport: &authTransport{apiKey: apiKey, base: cfg.base},
	}

	return &client{
		gql: graphql.NewClient(cfg.endpoint, httpClient),
	}
}

type authTransport struct {
	apiKey string
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", t.apiKey)
	return t.base.RoundTrip(cloned)
}

// IssueCreateInput mirrors Linear's issueCreate mutation input object
type IssueCreateInput struct {
	TeamID      string `json:"teamId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    int    `json:"priority,omitempty"`
}

// AttachmentCreateInput mirrors Linear's attachmentCreate mutation input object
type AttachmentCreateInput struct {
	IssueID  string `json:"issueId"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Subtitle string `json:"subtitle,omitempty"`
}

type issueFields struct {
	ID         graphql.String
	Identifier graphql.String
	Title      graphql.String
	URL        graphql.String
}

func toTrackerIssue(fields issueFields) *model.TrackerIssue {
	return &model.TrackerIssue{
		ID:         string(fields.ID),
		Identifier: string(fields.Identifier),
		Title:      string(fields.Title),
		URL:        string(fields.URL),
	}
}

// CreateIssue creates a new issue via the issueCreate mutation
func (c *client) CreateIssue(ctx context.Context, input *model.IssueCreate) (*model.TrackerIssue, error) {
	var m struct {
		IssueCreate struct {
			Success graphql.Boolean
			Issue   issueFields
		} `graphql:"issueCreate(input: $input)"`
	}

	vars := map[string]interface{}{
		"input": IssueCreateInput{
			TeamID:      input.TeamID,
			Title:       input.Title,
			Description: input.Description,
			Priority:    input.Priority,
		},
	}

	if err := c.gql.Mutate(ctx, &m, vars); err != nil {
		return nil, goerr.Wrap(err, "failed to create issue", goerr.V("team_id", input.TeamID))
	}
	if !bool(m.IssueCreate.Success) {
		return nil, goerr.New("tracker rejected issue creation", goerr.V("team_id", input.TeamID))
	}

	return toTrackerIssue(m.IssueCreate.Issue), nil
}

// CreateAttachment attaches a link record to an issue via attachmentCreate
func (c *client) CreateAttachment(ctx context.Context, input *model.AttachmentCreate) error {
	var m struct {
		AttachmentCreate struct {
			Success graphql.Boolean
		} `graphql:"attachmentCreate(input: $input)"`
	}

	vars := map[string]interface{}{
		"input": AttachmentCreateInput{
			IssueID:  input.IssueID,
			Title:    input.Title,
			URL:      input.URL,
			Subtitle: input.Subtitle,
		},
	}

	if err := c.gql.Mutate(ctx, &m, vars); err != nil {
		return goerr.Wrap(err, "failed to create attachment", goerr.V("issue_id", input.IssueID))
	}
	if !bool(m.AttachmentCreate.Success) {
		return goerr.New("tracker rejected attachment creation", goerr.V("issue_id", input.IssueID))
	}

	return nil
}

// Issue fetches an issue by id
func (c *client) Issue(ctx context.Context, id string) (*model.TrackerIssue, error) {
	var q struct {
		Issue issueFields `graphql:"issue(id: $id)"`
	}

	vars := map[string]interface{}{
		"id": graphql.String(id),
	}

	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch issue", goerr.V("issue_id", id))
	}

	return toTrackerIssue(q.Issue), nil
}
