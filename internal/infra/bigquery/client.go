package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"
)

// Client runs read-only queries for the table source.
type Client struct {
	client *bigquery.Client
}

// NewClient creates a Client billed to project.
func NewClient(ctx context.Context, project string, opts ...option.ClientOption) (*Client, error) {
	client, err := bigquery.NewClient(ctx, project, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewClient: creating client: %w", err)
	}
	return &Client{client: client}, nil
}

// Query implements the Querier interface.
func (c *Client) Query(ctx context.Context, sql string) (RowIterator, error) {
	it, err := c.client.Query(sql).Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("Client.Query: reading query: %w", err)
	}
	return it, nil
}

// Close closes the BigQuery client connection.
func (c *Client) Close() error {
	return c.client.Close()
}
