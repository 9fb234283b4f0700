// Package gh provides GitHub API access for Projects v2 boards.
// It implements a deep module interface - simple methods hiding the GraphQL
// queries and REST endpoints behind them.
package gh

import (
	"context"
	"net/http"

	"github.com/machinebox/graphql"
	"github.com/pkg/errors"
)

const (
	graphqlEndpoint = "https://api.github.com/graphql"
	restEndpoint    = "https://api.github.com"
)

// Client is a GitHub API client covering the GraphQL Projects v2 surface
// and the few REST endpoints the tool needs.
type Client struct {
	gql      *graphql.Client
	rest     *http.Client
	restBase string
	token    string
}

// New creates a new GitHub client authenticated with the given token.
func New(token string) *Client {
	return newWithEndpoints(token, graphqlEndpoint, restEndpoint)
}

// newWithEndpoints exists for tests, which point both APIs at local servers.
func newWithEndpoints(token, graphqlURL, restURL string) *Client {
	return &Client{
		gql: graphql.NewClient(graphqlURL),
		rest: &http.Client{
			Transport: &authedTransport{token: token, wrapped: http.DefaultTransport},
		},
		restBase: restURL,
		token:    token,
	}
}

// run executes a GraphQL request with authentication.
// Failures are classified into TransportError or GraphQLError.
func (c *Client) run(ctx context.Context, op string, req *graphql.Request, resp interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	if err := c.gql.Run(ctx, req, resp); err != nil {
		return wrapRunError(op, err)
	}
	return nil
}

// authedTransport injects the bearer token into every REST request.
type authedTransport struct {
	token   string
	wrapped http.RoundTripper
}

func (t *authedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)

	resp, err := t.wrapped.RoundTrip(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to perform RoundTrip in authedTransport")
	}

	return resp, nil
}
