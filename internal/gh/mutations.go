package gh

import (
	"context"
	"fmt"

	"github.com/machinebox/graphql"
)

// AddProjectItem adds existing content (an issue or PR node) to a project
// and returns the created project item ID.
func (c *Client) AddProjectItem(ctx context.Context, projectID string, contentID string) (string, error) {
	req := graphql.NewRequest(`
		mutation($projectId: ID!, $contentId: ID!) {
			addProjectV2ItemById(input: {projectId: $projectId, contentId: $contentId}) {
				item {
					id
				}
			}
		}
	`)

	req.Var("projectId", projectID)
	req.Var("contentId", contentID)

	var resp struct {
		AddProjectV2ItemByID struct {
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
		} `json:"addProjectV2ItemById"`
	}

	if err := c.run(ctx, "add project item", req, &resp); err != nil {
		return "", err
	}

	if resp.AddProjectV2ItemByID.Item.ID == "" {
		return "", &TransportError{Op: "add project item", Err: fmt.Errorf("no item ID in response")}
	}

	return resp.AddProjectV2ItemByID.Item.ID, nil
}

// UpdateItemField updates a project item's SINGLE_SELECT field value.
// The field and option are addressed by their node IDs, as required by the
// updateProjectV2ItemFieldValue mutation.
func (c *Client) UpdateItemField(ctx context.Context, projectID string, itemID string, fieldID string, optionID string) error {
	req := graphql.NewRequest(`
		mutation($projectId: ID!, $itemId: ID!, $fieldId: ID!, $value: ProjectV2FieldValue!) {
			updateProjectV2ItemFieldValue(
				input: {
					projectId: $projectId
					itemId: $itemId
					fieldId: $fieldId
					value: $value
				}
			) {
				projectV2Item {
					id
				}
			}
		}
	`)

	req.Var("projectId", projectID)
	req.Var("itemId", itemID)
	req.Var("fieldId", fieldID)
	req.Var("value", map[string]interface{}{
		"singleSelectOptionId": optionID,
	})

	var resp struct {
		UpdateProjectV2ItemFieldValue struct {
			ProjectV2Item struct {
				ID string `json:"id"`
			} `json:"projectV2Item"`
		} `json:"updateProjectV2ItemFieldValue"`
	}

	return c.run(ctx, "update item field", req, &resp)
}
