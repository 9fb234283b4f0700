package board

import (
	"testing"

	"github.com/robby/boardmd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fixtures
func itemWith(id, status, title string) domain.Item {
	item := domain.Item{ID: id}
	if status != "" {
		item.FieldValues = append(item.FieldValues, domain.FieldValue{
			Kind:  domain.FieldValueSingleSelect,
			Field: "Status",
			Name:  status,
		})
	}
	if title != "" {
		item.FieldValues = append(item.FieldValues, domain.FieldValue{
			Kind:  domain.FieldValueText,
			Field: "Title",
			Text:  title,
		})
	}
	return item
}

func TestCategorize_FirstSeenOrder(t *testing.T) {
	items := []domain.Item{
		itemWith("item_1", "Todo", "A"),
		itemWith("item_2", "Done", "B"),
		itemWith("item_3", "Todo", "C"),
	}

	c := Categorize(items)

	assert.Equal(t, []string{"Todo", "Done"}, c.Statuses())
	assert.Equal(t, []string{"A", "C"}, c.Titles("Todo"))
	assert.Equal(t, []string{"B"}, c.Titles("Done"))
}

func TestCategorize_DropsItemsMissingStatusOrTitle(t *testing.T) {
	items := []domain.Item{
		itemWith("item_1", "Todo", ""),   // No title
		itemWith("item_2", "", "Orphan"), // No status
		itemWith("item_3", "", ""),       // Neither
	}

	c := Categorize(items)

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Statuses())
}

func TestCategorize_LastValueWins(t *testing.T) {
	item := domain.Item{
		ID: "item_1",
		FieldValues: []domain.FieldValue{
			{Kind: domain.FieldValueSingleSelect, Field: "Status", Name: "Todo"},
			{Kind: domain.FieldValueText, Field: "Title", Text: "First"},
			{Kind: domain.FieldValueSingleSelect, Field: "Status", Name: "Done"},
			{Kind: domain.FieldValueText, Field: "Title", Text: "Second"},
		},
	}

	c := Categorize([]domain.Item{item})

	assert.Equal(t, []string{"Done"}, c.Statuses())
	assert.Equal(t, []string{"Second"}, c.Titles("Done"))
}

func TestCategorize_MismatchedPayloadKindsDropItem(t *testing.T) {
	// A text value named "Status" and a single-select named "Title" carry
	// the wrong payloads and must not categorize the item.
	item := domain.Item{
		ID: "item_1",
		FieldValues: []domain.FieldValue{
			{Kind: domain.FieldValueText, Field: "Status", Text: "Todo"},
			{Kind: domain.FieldValueSingleSelect, Field: "Title", Name: "A"},
		},
	}

	c := Categorize([]domain.Item{item})

	assert.Equal(t, 0, c.Len())
}

func TestCategorize_LaterMismatchedValueResets(t *testing.T) {
	// Any later value named "Status" wins, even one of the wrong payload
	// kind: a text value after a valid select resets the status to empty
	// and the item is dropped.
	item := domain.Item{
		ID: "item_1",
		FieldValues: []domain.FieldValue{
			{Kind: domain.FieldValueSingleSelect, Field: "Status", Name: "Todo"},
			{Kind: domain.FieldValueText, Field: "Title", Text: "A"},
			{Kind: domain.FieldValueText, Field: "Status", Text: "Todo"},
		},
	}

	c := Categorize([]domain.Item{item})

	assert.Equal(t, 0, c.Len())
}

func TestCategorize_NoDeduplication(t *testing.T) {
	items := []domain.Item{
		itemWith("item_1", "Todo", "Same"),
		itemWith("item_2", "Todo", "Same"),
	}

	c := Categorize(items)

	assert.Equal(t, []string{"Same", "Same"}, c.Titles("Todo"))
}

func TestCategorize_Idempotent(t *testing.T) {
	items := []domain.Item{
		itemWith("item_1", "Todo", "A"),
		itemWith("item_2", "Done", "B"),
		itemWith("item_3", "Todo", "C"),
	}

	first := Categorize(items)
	second := Categorize(items)

	require.Equal(t, first.Statuses(), second.Statuses())
	for _, status := range first.Statuses() {
		assert.Equal(t, first.Titles(status), second.Titles(status))
	}
}

func TestRender_Scenario(t *testing.T) {
	items := []domain.Item{
		itemWith("item_1", "Todo", "A"),
		itemWith("item_2", "Done", "B"),
		itemWith("item_3", "Todo", "C"),
	}

	md := Render(Categorize(items))

	expected := "# Project Board Status\n\n" +
		"## Todo\n" +
		"- [ ] A\n" +
		"- [ ] C\n" +
		"\n" +
		"## Done\n" +
		"- [ ] B\n" +
		"\n"
	assert.Equal(t, expected, md)
}

func TestRender_Empty(t *testing.T) {
	md := Render(NewCategorized())

	assert.Equal(t, "# Project Board Status\n\n", md)
}

func TestRender_Deterministic(t *testing.T) {
	items := []domain.Item{
		itemWith("item_1", "Backlog", "X"),
		itemWith("item_2", "In Progress", "Y"),
		itemWith("item_3", "Backlog", "Z"),
	}

	c := Categorize(items)
	first := Render(c)

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Render(c))
	}
}

func TestCategorized_ReturnsCopies(t *testing.T) {
	c := NewCategorized()
	c.Add("Todo", "A")

	statuses := c.Statuses()
	statuses[0] = "mutated"
	titles := c.Titles("Todo")
	titles[0] = "mutated"

	assert.Equal(t, []string{"Todo"}, c.Statuses())
	assert.Equal(t, []string{"A"}, c.Titles("Todo"))
}
