// Package domain defines the normalized domain types for GitHub Projects v2.
// These types represent the core concepts independent of the GitHub API structure.
package domain

// Item represents one project board entry with its field values and
// optional linked content.
type Item struct {
	ID          string       // GitHub ProjectV2Item node ID
	FieldValues []FieldValue // Field values in API response order
	Content     *Content     // Linked content, nil for private/deleted items
}

// FieldValueKind discriminates the payload carried by a FieldValue.
type FieldValueKind int

const (
	FieldValueText FieldValueKind = iota
	FieldValueDate
	FieldValueSingleSelect
)

// FieldValue is one field value on an item. Field names the defining
// project field (e.g. "Status", "Title"); exactly one payload is set
// according to Kind.
type FieldValue struct {
	Kind  FieldValueKind
	Field string // Defining field name
	Text  string // FieldValueText payload
	Date  string // FieldValueDate payload (ISO8601 date)
	Name  string // FieldValueSingleSelect payload (option name)
}

// Content is the linked content of an item: a draft issue, issue, or
// pull request.
type Content struct {
	Type      string   // ContentTypeDraftIssue, ContentTypeIssue, or ContentTypePullRequest
	Title     string   // Content title
	Body      string   // Draft issue body (empty otherwise)
	Assignees []string // Assignee logins, only for Issue/PullRequest
}

// FieldDef represents a project field definition with its metadata.
type FieldDef struct {
	ID      string   `json:"id"`                // GitHub field node ID
	Name    string   `json:"name"`              // Field name (e.g., "Status")
	Type    string   `json:"dataType"`          // Field type (e.g., "SINGLE_SELECT")
	Options []Option `json:"options,omitempty"` // Options for SINGLE_SELECT fields
}

// Option represents a single option value for a SINGLE_SELECT field.
type Option struct {
	ID   string `json:"id"`   // GitHub option node ID
	Name string `json:"name"` // Option name displayed to users (e.g., "Extracted")
}

// Issue is a repository issue as returned by the REST issues listing.
// Only the fields the import path consumes are kept.
type Issue struct {
	NodeID string `json:"node_id"`
	Title  string `json:"title"`
	Number int    `json:"number"`
	State  string `json:"state"`
}

// Milestone is a repository milestone from the REST API.
type Milestone struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueOn       string `json:"due_on"`
}

// Label is a repository label from the REST API.
type Label struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoadmapIssue is an issue with the fields the milestone roadmap renders.
type RoadmapIssue struct {
	ID      int64  `json:"id"`
	Number  int    `json:"number"`
	Title   string `json:"title"`
	State   string `json:"state"`
	HTMLURL string `json:"html_url"`
}

// Card is a classic-projects card from the REST API. Note holds the
// free-text body for cards without linked content; ContentURL points at the
// linked issue or PR when one exists.
type Card struct {
	ID         int64  `json:"id"`
	Note       string `json:"note"`
	ContentURL string `json:"content_url"`
}

// CardContent is the issue or pull request a classic card links to.
type CardContent struct {
	Title   string `json:"title"`
	Number  int    `json:"number"`
	State   string `json:"state"`
	HTMLURL string `json:"html_url"`
}

// FieldType constants for commonly used field types.
const (
	FieldTypeSingleSelect = "SINGLE_SELECT"
	FieldTypeText         = "TEXT"
	FieldTypeNumber       = "NUMBER"
	FieldTypeDate         = "DATE"
	FieldTypeIteration    = "ITERATION"
)

// ContentType constants for item content.
const (
	ContentTypeIssue       = "Issue"
	ContentTypePullRequest = "PullRequest"
	ContentTypeDraftIssue  = "DraftIssue"
)
