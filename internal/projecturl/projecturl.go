// Package projecturl parses GitHub Projects v2 board URLs into the login
// and project number needed for GraphQL lookups.
package projecturl

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
)

// ErrInvalidURI indicates the given string is not a recognized project board URL.
var ErrInvalidURI = errors.New("invalid project URI")

// Two accepted shapes: organization boards and repository-scoped boards.
// The repository form captures "owner/repo" as a single login, matching how
// the resolver addresses it.
var (
	orgPattern  = regexp.MustCompile(`^/orgs/([^/]+)/projects/(\d+)$`)
	repoPattern = regexp.MustCompile(`^/([^/]+/[^/]+)/projects/(\d+)$`)
)

// Ref identifies a project board by owner login and project number.
type Ref struct {
	Login  string
	Number int
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/projects/%d", r.Login, r.Number)
}

// Parse extracts the login and project number from a project board URL.
// Accepted paths are /orgs/{login}/projects/{n} and /{owner}/{repo}/projects/{n};
// anything else fails with ErrInvalidURI.
func Parse(uri string) (Ref, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	matches := orgPattern.FindStringSubmatch(parsed.Path)
	if matches == nil {
		matches = repoPattern.FindStringSubmatch(parsed.Path)
	}
	if matches == nil {
		return Ref{}, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	number, err := strconv.Atoi(matches[2])
	if err != nil || number <= 0 {
		return Ref{}, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	return Ref{Login: matches[1], Number: number}, nil
}
