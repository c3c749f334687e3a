// Implements the rate-limited remote API client.

package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the remote API base URL.
	BaseURL = "https://api.notion.com/v1"
	// APIVersion is the pinned remote API version.
	APIVersion = "2022-06-28"
	// requestsPerSecond is the documented API rate limit.
	requestsPerSecond = 3
)

// Client is a rate-limited remote API client. It implements Adapter.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewClient creates a client authenticated with an integration token.
// The token is injected through an oauth2 static token source so the
// same client works with tokens obtained via the platform's OAuth flow.
func NewClient(token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(context.Background(), src)
	hc.Timeout = 30 * time.Second
	return &Client{
		httpClient: hc,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		baseURL:    BaseURL,
	}
}

// NewClientWithHTTP creates a client over a caller-supplied HTTP
// client and base URL. Used by tests with httptest servers.
func NewClientWithHTTP(hc *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: hc,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		baseURL:    baseURL,
	}
}

// do performs one HTTP request, honoring the rate limit.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr Error
		if err := json.Unmarshal(respBody, &apiErr); err != nil {
			return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
		}
		return nil, &apiErr
	}

	return respBody, nil
}

// get performs a GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// send performs a request with a JSON body and decodes the response.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	data, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// GetDatabase retrieves a database by ID.
func (c *Client) GetDatabase(ctx context.Context, id string) (*Database, error) {
	var db Database
	if err := c.get(ctx, "/databases/"+id, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// CreateDatabaseRequest is the request body for database creation.
type CreateDatabaseRequest struct {
	Parent     Parent                        `json:"parent"`
	Title      []RichText                    `json:"title,omitempty"`
	Properties map[string]PropertyDefinition `json:"properties"`
}

// CreateDatabase creates a database under a parent page.
func (c *Client) CreateDatabase(ctx context.Context, req *CreateDatabaseRequest) (*Database, error) {
	var db Database
	if err := c.send(ctx, http.MethodPost, "/databases", req, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// UpdateDatabaseRequest is the request body for database updates. A nil
// entry in Properties deletes the named property remotely.
type UpdateDatabaseRequest struct {
	Title      []RichText                     `json:"title,omitempty"`
	Properties map[string]*PropertyDefinition `json:"properties,omitempty"`
}

// UpdateDatabase updates a database's title or property definitions.
func (c *Client) UpdateDatabase(ctx context.Context, id string, req *UpdateDatabaseRequest) (*Database, error) {
	var db Database
	if err := c.send(ctx, http.MethodPatch, "/databases/"+id, req, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// QueryOptions defines options for querying a database.
type QueryOptions struct {
	Filter      *Filter `json:"filter,omitempty"`
	Sorts       []Sort  `json:"sorts,omitempty"`
	StartCursor string  `json:"start_cursor,omitempty"`
	PageSize    int     `json:"page_size,omitempty"`
}

// QueryDatabase queries one page of database records.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, opts *QueryOptions) (*QueryResponse, error) {
	if opts == nil {
		opts = &QueryOptions{}
	}
	if opts.PageSize == 0 {
		opts.PageSize = 100
	}
	var resp QueryResponse
	if err := c.send(ctx, http.MethodPost, "/databases/"+databaseID+"/query", opts, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// QueryDatabaseAll queries all records in a database, handling pagination.
func (c *Client) QueryDatabaseAll(ctx context.Context, databaseID string, opts *QueryOptions) ([]Page, error) {
	var pages []Page
	var cursor string
	for {
		reqOpts := &QueryOptions{PageSize: 100, StartCursor: cursor}
		if opts != nil {
			reqOpts.Filter = opts.Filter
			reqOpts.Sorts = opts.Sorts
		}
		resp, err := c.QueryDatabase(ctx, databaseID, reqOpts)
		if err != nil {
			return nil, err
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == nil {
			break
		}
		cursor = *resp.NextCursor
	}
	return pages, nil
}

// GetPage retrieves a page by ID.
func (c *Client) GetPage(ctx context.Context, id string) (*Page, error) {
	var page Page
	if err := c.get(ctx, "/pages/"+id, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreatePageRequest is the request body for page creation.
type CreatePageRequest struct {
	Parent     Parent                   `json:"parent"`
	Properties map[string]PropertyValue `json:"properties"`
	Children   []Block                  `json:"children,omitempty"`
	Icon       *Icon                    `json:"icon,omitempty"`
	Cover      *FileRef                 `json:"cover,omitempty"`
}

// CreatePage creates a page (a record when the parent is a database).
func (c *Client) CreatePage(ctx context.Context, req *CreatePageRequest) (*Page, error) {
	var page Page
	if err := c.send(ctx, http.MethodPost, "/pages", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePageRequest is the request body for page updates.
type UpdatePageRequest struct {
	Properties map[string]PropertyValue `json:"properties,omitempty"`
	Archived   *bool                    `json:"archived,omitempty"`
	Icon       *Icon                    `json:"icon,omitempty"`
	Cover      *FileRef                 `json:"cover,omitempty"`
}

// UpdatePage updates a page's properties or archived state.
func (c *Client) UpdatePage(ctx context.Context, id string, req *UpdatePageRequest) (*Page, error) {
	var page Page
	if err := c.send(ctx, http.MethodPatch, "/pages/"+id, req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ArchivePage moves a page to the trash.
func (c *Client) ArchivePage(ctx context.Context, id string) (*Page, error) {
	archived := true
	return c.UpdatePage(ctx, id, &UpdatePageRequest{Archived: &archived})
}

// RestorePage restores a page from the trash.
func (c *Client) RestorePage(ctx context.Context, id string) (*Page, error) {
	archived := false
	return c.UpdatePage(ctx, id, &UpdatePageRequest{Archived: &archived})
}

// GetBlockChildren retrieves one page of a block's children.
func (c *Client) GetBlockChildren(ctx context.Context, blockID, cursor string) (*BlocksResponse, error) {
	path := "/blocks/" + blockID + "/children?page_size=100"
	if cursor != "" {
		path += "&start_cursor=" + cursor
	}
	var resp BlocksResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBlockChildrenAll retrieves all children of a block, handling pagination.
func (c *Client) GetBlockChildrenAll(ctx context.Context, blockID string) ([]Block, error) {
	var blocks []Block
	var cursor string
	for {
		resp, err := c.GetBlockChildren(ctx, blockID, cursor)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, resp.Results...)
		if !resp.HasMore || resp.NextCursor == nil {
			break
		}
		cursor = *resp.NextCursor
	}
	return blocks, nil
}

// AppendBlockChildren appends blocks to a page or block.
func (c *Client) AppendBlockChildren(ctx context.Context, blockID string, children []Block) ([]Block, error) {
	body := struct {
		Children []Block `json:"children"`
	}{Children: children}
	var resp BlocksResponse
	if err := c.send(ctx, http.MethodPatch, "/blocks/"+blockID+"/children", &body, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// DeleteBlock moves a block to the trash.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/blocks/"+blockID, nil)
	return err
}

// GetUser retrieves a user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*Person, error) {
	var user Person
	if err := c.get(ctx, "/users/"+id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetMe retrieves the bot user the token belongs to.
func (c *Client) GetMe(ctx context.Context) (*Person, error) {
	var user Person
	if err := c.get(ctx, "/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchFilter restricts search results to pages or databases.
type SearchFilter struct {
	Value    string `json:"value"`    // "page" or "database"
	Property string `json:"property"` // "object"
}

// SearchRequest is the request body for the search endpoint.
type SearchRequest struct {
	Query       string        `json:"query,omitempty"`
	Filter      *SearchFilter `json:"filter,omitempty"`
	StartCursor string        `json:"start_cursor,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
}

// Search searches for pages and databases shared with the integration.
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req.PageSize == 0 {
		req.PageSize = 100
	}
	var resp SearchResponse
	if err := c.send(ctx, http.MethodPost, "/search", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
