package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const defaultEndpoint = "https://api.github.com/graphql"

// rateLimitFloor is the remaining-request threshold below which the client
// refuses to issue new calls until the reported reset time passes.
const rateLimitFloor = 10

// Client talks to the GitHub GraphQL API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	endpoint   string

	mu                 sync.Mutex
	rateLimitRemaining int
	rateLimitReset     time.Time
}

// NewClient creates a client. A nil httpClient falls back to a client with a
// 30 second timeout.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient:         httpClient,
		endpoint:           defaultEndpoint,
		rateLimitRemaining: 5000,
	}
}

// SetEndpoint overrides the GraphQL endpoint. Used by tests.
func (c *Client) SetEndpoint(endpoint string) { c.endpoint = endpoint }

// FetchAuthoredPRs returns the open pull requests authored by username.
func (c *Client) FetchAuthoredPRs(ctx context.Context, token, username string) ([]PullRequest, error) {
	var data authoredPRsData
	if err := c.execute(ctx, token, authoredPRsQuery(username), &data); err != nil {
		return nil, err
	}
	return data.Search.Nodes, nil
}

// FetchPR returns the single pull request identified by its web URL.
func (c *Client) FetchPR(ctx context.Context, token, url string) (*PullRequest, error) {
	owner, repo, number, err := ParsePRURL(url)
	if err != nil {
		return nil, err
	}

	var data singlePRData
	if err := c.execute(ctx, token, singlePRQuery(owner, repo, number), &data); err != nil {
		return nil, err
	}
	if data.Repository == nil || data.Repository.PullRequest == nil {
		return nil, &Error{Kind: KindNoData}
	}
	return data.Repository.PullRequest, nil
}

func (c *Client) execute(ctx context.Context, token, query string, out any) error {
	if err := c.checkRateLimit(); err != nil {
		return err
	}

	body, err := json.Marshal(graphQLRequest{Query: query})
	if err != nil {
		return &Error{Kind: KindInvalidResponse, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &Error{Kind: KindNetwork, Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Cause: err}
	}
	defer resp.Body.Close()

	remaining, reset := c.updateRateLimits(resp)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized}
	case http.StatusForbidden:
		if remaining == 0 {
			return &Error{Kind: KindRateLimited, Reset: reset}
		}
		return &Error{Kind: KindForbidden}
	default:
		return &Error{Kind: KindInvalidResponse, Cause: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var envelope graphQLResponse[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &Error{Kind: KindInvalidResponse, Cause: err}
	}
	if len(envelope.Errors) > 0 {
		return &Error{Kind: KindGraphQL, GraphQLErrors: envelope.Errors}
	}
	if envelope.Data == nil {
		return &Error{Kind: KindNoData}
	}
	if err := json.Unmarshal(*envelope.Data, out); err != nil {
		return &Error{Kind: KindInvalidResponse, Cause: err}
	}
	return nil
}

func (c *Client) checkRateLimit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rateLimitRemaining <= rateLimitFloor && time.Now().Before(c.rateLimitReset) {
		return &Error{Kind: KindRateLimited, Reset: c.rateLimitReset}
	}
	return nil
}

func (c *Client) updateRateLimits(resp *http.Response) (remaining int, reset time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v := resp.Header.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.rateLimitRemaining = n
		}
	}
	if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
		if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.rateLimitReset = time.Unix(ts, 0)
		}
	}
	return c.rateLimitRemaining, c.rateLimitReset
}

func authoredPRsQuery(username string) string {
	return fmt.Sprintf(`
query AuthoredPRs {
  search(query: "is:pr is:open author:%s", type: ISSUE, first: 50) {
    nodes {
      ... on PullRequest {
        id
        number
        title
        url
        createdAt
        isDraft
        repository { nameWithOwner }
        reviewDecision
        mergeable
        commits(last: 1) {
          nodes { commit { statusCheckRollup { state } } }
        }
      }
    }
  }
}`, username)
}

func singlePRQuery(owner, repo string, number int) string {
	return fmt.Sprintf(`
query SinglePR {
  repository(owner: %q, name: %q) {
    pullRequest(number: %d) {
      id
      number
      title
      url
      createdAt
      isDraft
      repository { nameWithOwner }
      reviewDecision
      mergeable
      commits(last: 1) {
        nodes { commit { statusCheckRollup { state } } }
      }
    }
  }
}`, owner, repo, number)
}
