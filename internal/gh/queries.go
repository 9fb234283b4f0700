package gh

import (
	"context"
	"fmt"

	"github.com/machinebox/graphql"
	"github.com/robby/boardmd/internal/domain"
	"github.com/robby/boardmd/internal/projecturl"
)

// ResolveProjectNode looks up the ProjectV2 node ID for a board reference.
// The node ID is the input to every subsequent project query and mutation.
// Returns ErrProjectNotFound when the login or project number does not
// resolve to a board the token can see.
func (c *Client) ResolveProjectNode(ctx context.Context, ref projecturl.Ref) (string, error) {
	req := graphql.NewRequest(`
		query($login: String!, $number: Int!) {
			organization(login: $login) {
				projectV2(number: $number) {
					id
				}
			}
		}
	`)
	req.Var("login", ref.Login)
	req.Var("number", ref.Number)

	var resp struct {
		Organization *struct {
			ProjectV2 *struct {
				ID string `json:"id"`
			} `json:"projectV2"`
		} `json:"organization"`
	}

	if err := c.run(ctx, "resolve project node", req, &resp); err != nil {
		return "", err
	}

	if resp.Organization == nil || resp.Organization.ProjectV2 == nil || resp.Organization.ProjectV2.ID == "" {
		return "", fmt.Errorf("%w: %s", ErrProjectNotFound, ref)
	}

	return resp.Organization.ProjectV2.ID, nil
}

// ProjectItems fetches the first itemLimit items of a project, with up to
// fieldLimit field values each and the linked content inlined. The second
// return value reports whether more items exist beyond the requested page,
// so callers can signal truncation instead of silently dropping data.
func (c *Client) ProjectItems(ctx context.Context, nodeID string, itemLimit, fieldLimit int) ([]domain.Item, bool, error) {
	req := graphql.NewRequest(`
		query($nodeId: ID!, $first: Int!, $fieldFirst: Int!) {
			node(id: $nodeId) {
				... on ProjectV2 {
					items(first: $first) {
						pageInfo {
							hasNextPage
						}
						nodes {
							id
							fieldValues(first: $fieldFirst) {
								nodes {
									__typename
									... on ProjectV2ItemFieldTextValue {
										text
										field {
											... on ProjectV2FieldCommon {
												name
											}
										}
									}
									... on ProjectV2ItemFieldDateValue {
										date
										field {
											... on ProjectV2FieldCommon {
												name
											}
										}
									}
									... on ProjectV2ItemFieldSingleSelectValue {
										name
										field {
											... on ProjectV2FieldCommon {
												name
											}
										}
									}
								}
							}
							content {
								__typename
								... on DraftIssue {
									title
									body
								}
								... on Issue {
									title
									assignees(first: 10) {
										nodes {
											login
										}
									}
								}
								... on PullRequest {
									title
									assignees(first: 10) {
										nodes {
											login
										}
									}
								}
							}
						}
					}
				}
			}
		}
	`)
	req.Var("nodeId", nodeID)
	req.Var("first", itemLimit)
	req.Var("fieldFirst", fieldLimit)

	var resp struct {
		Node struct {
			Items struct {
				PageInfo struct {
					HasNextPage bool `json:"hasNextPage"`
				} `json:"pageInfo"`
				Nodes []struct {
					ID          string `json:"id"`
					FieldValues struct {
						Nodes []struct {
							Typename string `json:"__typename"`
							Text     string `json:"text"`
							Date     string `json:"date"`
							Name     string `json:"name"`
							Field    *struct {
								Name string `json:"name"`
							} `json:"field"`
						} `json:"nodes"`
					} `json:"fieldValues"`
					Content *struct {
						Typename  string `json:"__typename"`
						Title     string `json:"title"`
						Body      string `json:"body"`
						Assignees *struct {
							Nodes []struct {
								Login string `json:"login"`
							} `json:"nodes"`
						} `json:"assignees"`
					} `json:"content"`
				} `json:"nodes"`
			} `json:"items"`
		} `json:"node"`
	}

	if err := c.run(ctx, "fetch project items", req, &resp); err != nil {
		return nil, false, err
	}

	items := make([]domain.Item, 0, len(resp.Node.Items.Nodes))
	for _, node := range resp.Node.Items.Nodes {
		item := domain.Item{ID: node.ID}

		for _, fv := range node.FieldValues.Nodes {
			// Union members outside the three requested fragments
			// decode without a field; skip them.
			if fv.Field == nil {
				continue
			}

			value := domain.FieldValue{Field: fv.Field.Name}
			switch fv.Typename {
			case "ProjectV2ItemFieldTextValue":
				value.Kind = domain.FieldValueText
				value.Text = fv.Text
			case "ProjectV2ItemFieldDateValue":
				value.Kind = domain.FieldValueDate
				value.Date = fv.Date
			case "ProjectV2ItemFieldSingleSelectValue":
				value.Kind = domain.FieldValueSingleSelect
				value.Name = fv.Name
			default:
				continue
			}
			item.FieldValues = append(item.FieldValues, value)
		}

		if node.Content != nil && node.Content.Typename != "" {
			content := &domain.Content{
				Title: node.Content.Title,
			}
			switch node.Content.Typename {
			case "DraftIssue":
				content.Type = domain.ContentTypeDraftIssue
				content.Body = node.Content.Body
			case "Issue":
				content.Type = domain.ContentTypeIssue
			case "PullRequest":
				content.Type = domain.ContentTypePullRequest
			}
			if node.Content.Assignees != nil {
				content.Assignees = make([]string, 0, len(node.Content.Assignees.Nodes))
				for _, a := range node.Content.Assignees.Nodes {
					content.Assignees = append(content.Assignees, a.Login)
				}
			}
			item.Content = content
		}

		items = append(items, item)
	}

	return items, resp.Node.Items.PageInfo.HasNextPage, nil
}

// ProjectFields fetches the field definitions of a project, including
// options for SINGLE_SELECT fields. Used by the fields diagnostic and by
// the importer to resolve the Status field and option IDs.
func (c *Client) ProjectFields(ctx context.Context, nodeID string) ([]domain.FieldDef, error) {
	req := graphql.NewRequest(`
		query($nodeId: ID!) {
			node(id: $nodeId) {
				... on ProjectV2 {
					fields(first: 50) {
						nodes {
							... on ProjectV2Field {
								id
								name
								dataType
							}
							... on ProjectV2SingleSelectField {
								id
								name
								dataType
								options {
									id
									name
								}
							}
							... on ProjectV2IterationField {
								id
								name
								dataType
							}
						}
					}
				}
			}
		}
	`)
	req.Var("nodeId", nodeID)

	var resp struct {
		Node struct {
			Fields struct {
				Nodes []struct {
					ID       string `json:"id"`
					Name     string `json:"name"`
					DataType string `json:"dataType"`
					Options  []struct {
						ID   string `json:"id"`
						Name string `json:"name"`
					} `json:"options"`
				} `json:"nodes"`
			} `json:"fields"`
		} `json:"node"`
	}

	if err := c.run(ctx, "fetch project fields", req, &resp); err != nil {
		return nil, err
	}

	fields := make([]domain.FieldDef, 0, len(resp.Node.Fields.Nodes))
	for _, node := range resp.Node.Fields.Nodes {
		field := domain.FieldDef{
			ID:   node.ID,
			Name: node.Name,
			Type: node.DataType,
		}

		if node.DataType == domain.FieldTypeSingleSelect && len(node.Options) > 0 {
			field.Options = make([]domain.Option, 0, len(node.Options))
			for _, opt := range node.Options {
				field.Options = append(field.Options, domain.Option{
					ID:   opt.ID,
					Name: opt.Name,
				})
			}
		}

		fields = append(fields, field)
	}

	return fields, nil
}
