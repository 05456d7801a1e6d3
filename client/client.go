// Package client talks to the external knowledge-graph service. Graph
// documents and question lists are opaque JSON payloads owned by that
// service; decoding lives in ingest.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/studymesh/kgraph/ingest"
	"github.com/studymesh/kgraph/models"
)

// Client is an HTTP client for the graph and question endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the service at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchGraph retrieves and ingests the knowledge graph for a subject in the
// requested graph-type mode.
func (c *Client) FetchGraph(ctx context.Context, subjectID string, graphType models.GraphType) (*models.GraphDocument, error) {
	endpoint := fmt.Sprintf("%s/subjects/%s/graph?type=%s",
		c.baseURL, url.PathEscape(subjectID), url.QueryEscape(string(graphType)))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching graph for subject %q: %w", subjectID, err)
	}
	return ingest.ParseDocument(body)
}

// FetchQuestionsForKnowledgePoint retrieves the questions referencing a
// knowledge point.
func (c *Client) FetchQuestionsForKnowledgePoint(ctx context.Context, nodeID string) ([]*models.Question, error) {
	endpoint := fmt.Sprintf("%s/knowledge-points/%s/questions", c.baseURL, url.PathEscape(nodeID))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching questions for node %q: %w", nodeID, err)
	}
	var questions []*models.Question
	if err := json.Unmarshal(body, &questions); err != nil {
		return nil, fmt.Errorf("decoding question list: %w", err)
	}
	return questions, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
