package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/robby/boardmd/internal/domain"
)

// Accept header for the classic Projects API, which GitHub only serves
// behind its preview media type.
const classicProjectsAccept = "application/vnd.github.inertia-preview+json"

// getJSON performs an authenticated GET and decodes the JSON response.
// Non-200 statuses become a TransportError carrying the status code.
func (c *Client) getJSON(ctx context.Context, op, rawURL, accept string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.rest.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// A bounded read keeps the error actionable (GitHub sends a JSON
		// message on 403/404) and drains the body for connection reuse.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: errors.Wrap(err, "decoding response")}
	}

	return nil
}

// ListOpenIssues fetches the open issues of a repository. Pull requests
// also appear in this listing; the importer adds them like any other issue,
// matching the REST endpoint's behavior.
func (c *Client) ListOpenIssues(ctx context.Context, org, repo string) ([]domain.Issue, error) {
	var issues []domain.Issue
	u := fmt.Sprintf("%s/repos/%s/%s/issues", c.restBase, url.PathEscape(org), url.PathEscape(repo))
	if err := c.getJSON(ctx, "list issues", u, "", &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Milestones fetches the open milestones of a repository.
func (c *Client) Milestones(ctx context.Context, org, repo string) ([]domain.Milestone, error) {
	var milestones []domain.Milestone
	u := fmt.Sprintf("%s/repos/%s/%s/milestones", c.restBase, url.PathEscape(org), url.PathEscape(repo))
	if err := c.getJSON(ctx, "list milestones", u, "", &milestones); err != nil {
		return nil, err
	}
	return milestones, nil
}

// Labels fetches the labels of a repository.
func (c *Client) Labels(ctx context.Context, org, repo string) ([]domain.Label, error) {
	var labels []domain.Label
	u := fmt.Sprintf("%s/repos/%s/%s/labels", c.restBase, url.PathEscape(org), url.PathEscape(repo))
	if err := c.getJSON(ctx, "list labels", u, "", &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// MilestoneIssues fetches all issues of a milestone carrying the given
// label, in any state, so closed work can render struck through.
func (c *Client) MilestoneIssues(ctx context.Context, org, repo string, milestone int, label string) ([]domain.RoadmapIssue, error) {
	query := url.Values{}
	query.Set("milestone", fmt.Sprintf("%d", milestone))
	query.Set("labels", label)
	query.Set("state", "all")

	var issues []domain.RoadmapIssue
	u := fmt.Sprintf("%s/repos/%s/%s/issues?%s", c.restBase, url.PathEscape(org), url.PathEscape(repo), query.Encode())
	if err := c.getJSON(ctx, "list milestone issues", u, "", &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// ColumnCards fetches the cards of a classic project column.
func (c *Client) ColumnCards(ctx context.Context, columnID int64) ([]domain.Card, error) {
	var cards []domain.Card
	u := fmt.Sprintf("%s/projects/columns/%d/cards", c.restBase, columnID)
	if err := c.getJSON(ctx, "list column cards", u, classicProjectsAccept, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// CardContent resolves the issue or PR a classic card links to, via the
// card's content_url. Note-only cards have no content URL.
func (c *Client) CardContent(ctx context.Context, contentURL string) (*domain.CardContent, error) {
	var content domain.CardContent
	if err := c.getJSON(ctx, "resolve card content", contentURL, "", &content); err != nil {
		return nil, err
	}
	return &content, nil
}
