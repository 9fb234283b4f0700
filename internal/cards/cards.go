// Package cards renders classic-projects cards as Markdown list items.
// A card either links to an issue or PR, rendered as a titled link (struck
// through once closed), or carries a free-text note rendered verbatim.
package cards

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/robby/boardmd/internal/domain"
)

// Notes are sometimes wrapped in CDATA to keep them from breaking GitHub
// Pages rendering; unwrap before emitting.
var cdataPattern = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)

// ContentResolver resolves a card's linked issue or PR by its content URL.
// gh.Client satisfies this.
type ContentResolver interface {
	CardContent(ctx context.Context, contentURL string) (*domain.CardContent, error)
}

// Formatter renders cards, resolving linked content at most once per card
// ID. The cache lives for one Formatter, i.e. one run; card content never
// changes mid-run.
type Formatter struct {
	resolver ContentResolver
	cache    map[int64]*domain.CardContent
}

// NewFormatter creates a Formatter with an empty resolution cache.
func NewFormatter(resolver ContentResolver) *Formatter {
	return &Formatter{
		resolver: resolver,
		cache:    make(map[int64]*domain.CardContent),
	}
}

// content returns the card's linked content, or nil when the card is a
// plain note or resolution fails. Failures are cached like successes; a
// card that failed to resolve once is a note for the rest of the run.
func (f *Formatter) content(ctx context.Context, card domain.Card) *domain.CardContent {
	if cached, seen := f.cache[card.ID]; seen {
		return cached
	}

	var content *domain.CardContent
	if card.ContentURL != "" {
		if resolved, err := f.resolver.CardContent(ctx, card.ContentURL); err == nil {
			content = resolved
		}
	}

	f.cache[card.ID] = content
	return content
}

// Format renders one card as a Markdown list item. Returns the empty
// string for cards that render to nothing; FormatCards filters those out.
func (f *Formatter) Format(ctx context.Context, card domain.Card) string {
	var line string

	if content := f.content(ctx, card); content != nil {
		line = fmt.Sprintf("%s - [Issue #%d](%s)", content.Title, content.Number, content.HTMLURL)
		if content.State == "closed" {
			line = "~~" + line + "~~"
		}
	} else {
		line = card.Note
	}

	line = strings.TrimSpace(line)
	line = cdataPattern.ReplaceAllString(line, "$1")

	if line == "" {
		return ""
	}

	// Indent continuation lines so a multi-line note stays one list item.
	line = strings.ReplaceAll(line, "\n", "\n  ")

	return "* " + line
}

// FormatCards renders a card list, dropping cards that format to nothing.
func (f *Formatter) FormatCards(ctx context.Context, cards []domain.Card) []string {
	lines := make([]string, 0, len(cards))
	for _, card := range cards {
		if line := f.Format(ctx, card); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
