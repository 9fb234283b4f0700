// Package importer pulls a repository's open issues onto a project board
// and marks each imported item's Status field.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/robby/boardmd/internal/domain"
	"github.com/robby/boardmd/internal/projecturl"
)

// The imported items land in this single-select option.
const (
	statusFieldName     = "Status"
	extractedOptionName = "Extracted"
)

var (
	// ErrNoStatusField indicates the project has no single-select Status field.
	ErrNoStatusField = errors.New("project has no single-select Status field")
	// ErrNoExtractedOption indicates the Status field has no Extracted option.
	ErrNoExtractedOption = errors.New("Status field has no Extracted option")
)

// ImportError is a failed import of one issue. Prior issues stay imported;
// there is no rollback.
type ImportError struct {
	IssueTitle string
	Err        error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("failed to import issue %q: %v", e.IssueTitle, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// ProjectAPI is the slice of the GitHub client the importer needs.
// gh.Client satisfies this.
type ProjectAPI interface {
	ResolveProjectNode(ctx context.Context, ref projecturl.Ref) (string, error)
	ProjectFields(ctx context.Context, nodeID string) ([]domain.FieldDef, error)
	ListOpenIssues(ctx context.Context, org, repo string) ([]domain.Issue, error)
	AddProjectItem(ctx context.Context, projectID, contentID string) (string, error)
	UpdateItemField(ctx context.Context, projectID, itemID, fieldID, optionID string) error
}

// Importer adds repository issues to a project board sequentially.
type Importer struct {
	api ProjectAPI
	log *log.Logger
}

// New creates an Importer.
func New(api ProjectAPI, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.Default()
	}
	return &Importer{api: api, log: logger}
}

// Run lists the repository's open issues and adds each to the project,
// setting its Status field to Extracted. The Status field and option IDs
// are resolved up front, before any mutation runs. A failed mutation stops
// the run with an ImportError naming the issue; issues already added stay
// on the board.
func (i *Importer) Run(ctx context.Context, ref projecturl.Ref, org, repo string) error {
	issues, err := i.api.ListOpenIssues(ctx, org, repo)
	if err != nil {
		return err
	}
	i.log.Info("fetched repository issues", "repo", org+"/"+repo, "count", len(issues))

	projectID, err := i.api.ResolveProjectNode(ctx, ref)
	if err != nil {
		return err
	}

	fieldID, optionID, err := i.resolveStatusField(ctx, projectID)
	if err != nil {
		return err
	}

	for _, issue := range issues {
		itemID, err := i.api.AddProjectItem(ctx, projectID, issue.NodeID)
		if err != nil {
			return &ImportError{IssueTitle: issue.Title, Err: err}
		}

		if err := i.api.UpdateItemField(ctx, projectID, itemID, fieldID, optionID); err != nil {
			return &ImportError{IssueTitle: issue.Title, Err: err}
		}

		i.log.Info("imported issue", "title", issue.Title, "item", itemID)
	}

	return nil
}

// resolveStatusField finds the node IDs of the Status field and its
// Extracted option. The update mutation requires real field and option
// IDs, not names.
func (i *Importer) resolveStatusField(ctx context.Context, projectID string) (fieldID, optionID string, err error) {
	fields, err := i.api.ProjectFields(ctx, projectID)
	if err != nil {
		return "", "", err
	}

	for _, field := range fields {
		if field.Type != domain.FieldTypeSingleSelect || !strings.EqualFold(field.Name, statusFieldName) {
			continue
		}
		for _, option := range field.Options {
			if strings.EqualFold(option.Name, extractedOptionName) {
				return field.ID, option.ID, nil
			}
		}
		return "", "", ErrNoExtractedOption
	}

	return "", "", ErrNoStatusField
}
