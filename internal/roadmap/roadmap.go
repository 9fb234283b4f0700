// Package roadmap renders a repository's milestones as a Markdown roadmap.
// Each milestone becomes a section listing its issues grouped by label,
// with closed issues struck through.
package roadmap

import (
	"context"
	"fmt"
	"strings"

	"github.com/robby/boardmd/internal/domain"
)

// RepoAPI is the slice of the GitHub client the roadmap needs.
// gh.Client satisfies this.
type RepoAPI interface {
	Milestones(ctx context.Context, org, repo string) ([]domain.Milestone, error)
	Labels(ctx context.Context, org, repo string) ([]domain.Label, error)
	MilestoneIssues(ctx context.Context, org, repo string, milestone int, label string) ([]domain.RoadmapIssue, error)
}

// Build fetches the repository's milestones, labels, and issues and
// renders the roadmap. An issue carrying several labels appears only under
// the first label that lists it.
func Build(ctx context.Context, api RepoAPI, org, repo string) (string, error) {
	milestones, err := api.Milestones(ctx, org, repo)
	if err != nil {
		return "", err
	}

	labels, err := api.Labels(ctx, org, repo)
	if err != nil {
		return "", err
	}

	seen := make(map[int64]bool)
	var lines []string

	for _, milestone := range milestones {
		lines = append(lines, fmt.Sprintf("# %s", milestone.Title))
		lines = append(lines, fmt.Sprintf("**ETA %s**", milestone.DueOn))
		lines = append(lines, "")
		lines = append(lines, milestone.Description)
		lines = append(lines, "")

		for _, label := range labels {
			issues, err := api.MilestoneIssues(ctx, org, repo, milestone.Number, label.Name)
			if err != nil {
				return "", err
			}
			if len(issues) == 0 {
				continue
			}

			if label.Description != "" {
				lines = append(lines, fmt.Sprintf("* %s - %s", label.Name, label.Description))
			} else {
				lines = append(lines, fmt.Sprintf("* %s", label.Name))
			}

			for _, issue := range issues {
				if seen[issue.ID] {
					continue
				}
				seen[issue.ID] = true

				entry := fmt.Sprintf("%s [Github Issue #%d](%s)", issue.Title, issue.Number, issue.HTMLURL)
				if issue.State != "open" {
					entry = "~~" + entry + "~~"
				}
				lines = append(lines, "  * "+entry)
			}
		}

		lines = append(lines, "")
	}

	lines = append(lines, "---")
	lines = append(lines, fmt.Sprintf(
		"For more information see [the Repository that this Roadmap was generated from.](https://github.com/%s/%s)",
		org, repo,
	))

	return strings.Join(lines, "\n"), nil
}
