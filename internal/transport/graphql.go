package transport

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

type graphQLRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

type graphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []graphQLError             `json:"errors"`
}

// Execute runs one GraphQL operation and returns the top-level fields of its
// data object. Any entry in the errors array fails the call.
func (c *Client) Execute(ctx context.Context, operationName, query string, variables map[string]any) (map[string]json.RawMessage, error) {
	op := "transport.Execute " + operationName

	if variables == nil {
		variables = map[string]any{}
	}

	var resp graphQLResponse
	err := c.do(ctx, op, c.graphqlURL, graphQLRequest{
		OperationName: operationName,
		Query:         query,
		Variables:     variables,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, &TransportError{Op: op, Err: errors.New("graphql: " + strings.Join(msgs, "; "))}
	}
	if resp.Data == nil {
		return nil, Malformed(op, errors.New("missing data"))
	}

	return resp.Data, nil
}
