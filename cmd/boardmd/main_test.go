package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/robby/boardmd/internal/gh"
	"github.com/robby/boardmd/internal/importer"
	"github.com/robby/boardmd/internal/projecturl"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid URI", fmt.Errorf("%w: nope", projecturl.ErrInvalidURI), exitBadInput},
		{"flag misuse", &badInputError{errors.New("--org and --repo must be given together")}, exitBadInput},
		{"transport failure", &gh.TransportError{Op: "list issues", StatusCode: 502}, exitAPI},
		{"graphql payload error", &gh.GraphQLError{Op: "fetch project items", Err: errors.New("field 'projectsV2' doesn't exist")}, exitAPI},
		{"project not found", fmt.Errorf("%w: acme/projects/4", gh.ErrProjectNotFound), exitAPI},
		{"import failure", &importer.ImportError{IssueTitle: "A", Err: errors.New("boom")}, exitAPI},
		{"missing status field", importer.ErrNoStatusField, exitAPI},
		{"anything else", errors.New("surprise"), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, exitCode(tc.err))
		})
	}
}

func TestRootCmd_RejectsHalfImportPair(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"https://github.com/orgs/acme/projects/1", "--org", "acme"})
	defer func() { orgFlag, repoFlag = "", "" }()

	err := cmd.Execute()

	assert.ErrorContains(t, err, "--org and --repo must be given together")
	assert.Equal(t, exitBadInput, exitCode(err))
}

func TestRootCmd_InvalidURI(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"https://github.com/orgs/acme/settings"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, projecturl.ErrInvalidURI)
}
