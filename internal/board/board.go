// Package board groups project items by their Status field and renders the
// result as a Markdown checklist. It follows the "deep modules" principle -
// a simple interface hiding the grouping and ordering rules.
package board

import (
	"strings"

	"github.com/robby/boardmd/internal/domain"
)

// Field names the categorizer keys on.
const (
	statusFieldName = "Status"
	titleFieldName  = "Title"
)

// Categorized holds item titles grouped by status. Status keys keep the
// order in which each status was first encountered, so rendering is
// deterministic for a given item list.
type Categorized struct {
	order  []string
	groups map[string][]string
}

// NewCategorized creates an empty Categorized.
func NewCategorized() *Categorized {
	return &Categorized{
		groups: make(map[string][]string),
	}
}

// Add appends a title under the given status, registering the status key
// on first use.
func (c *Categorized) Add(status, title string) {
	if _, exists := c.groups[status]; !exists {
		c.order = append(c.order, status)
	}
	c.groups[status] = append(c.groups[status], title)
}

// Statuses returns the status keys in first-seen order.
func (c *Categorized) Statuses() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

// Titles returns the titles recorded under a status, in insertion order.
func (c *Categorized) Titles(status string) []string {
	titles := make([]string, len(c.groups[status]))
	copy(titles, c.groups[status])
	return titles
}

// Len returns the number of status groups.
func (c *Categorized) Len() int {
	return len(c.order)
}

// Categorize groups items by their Status field value. For each item the
// last value named "Status" gives the status and the last value named
// "Title" gives the title, whatever payload kind those values carry - a
// later value of the wrong kind resets the slot to empty. An item missing
// either is dropped. Titles are not deduplicated and groups are not sorted.
func Categorize(items []domain.Item) *Categorized {
	categorized := NewCategorized()

	for _, item := range items {
		var status, title string

		for _, fv := range item.FieldValues {
			switch fv.Field {
			case statusFieldName:
				status = fv.Name
			case titleFieldName:
				title = fv.Text
			}
		}

		if status != "" && title != "" {
			categorized.Add(status, title)
		}
	}

	return categorized
}

// Render emits the Markdown checklist: a document heading, then one
// section per status with a task-list line per title.
func Render(c *Categorized) string {
	var b strings.Builder
	b.WriteString("# Project Board Status\n\n")

	for _, status := range c.Statuses() {
		b.WriteString("## " + status + "\n")
		for _, title := range c.Titles(status) {
			b.WriteString("- [ ] " + title + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}
