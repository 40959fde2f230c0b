package notion

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/folio-space/core/internal/config"
	"github.com/jomei/notionapi"
)

const (
	pageSize = 100
	maxDepth = 3
	maxCalls = 50
)

var (
	ErrNotConfigured = errors.New("notion token not configured")
	ErrNotFound      = errors.New("notion page not found")
)

// Page is the fetched block tree. Truncated is set when the call budget ran
// out before every child list was read.
type Page struct {
	Blocks    []Block
	Truncated bool
}

// Client reads page content from the Notion public API.
type Client struct {
	api        *notionapi.Client
	configured bool
}

func NewClient(cfg config.NotionConfig) *Client {
	hc := &http.Client{Timeout: 15 * time.Second}
	if base, err := url.Parse(cfg.BaseURL); err == nil && base.Host != "" && base.Host != "api.notion.com" {
		hc.Transport = rebase{target: base, next: http.DefaultTransport}
	}
	opts := []notionapi.ClientOption{notionapi.WithHTTPClient(hc)}
	if cfg.Version != "" {
		opts = append(opts, notionapi.WithVersion(cfg.Version))
	}
	return &Client{
		api:        notionapi.NewClient(notionapi.Token(cfg.Token), opts...),
		configured: cfg.Token != "",
	}
}

// rebase sends API calls to a self-hosted proxy or a test server.
type rebase struct {
	target *url.URL
	next   http.RoundTripper
}

func (r rebase) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = r.target.Scheme
	req.URL.Host = r.target.Host
	req.Host = r.target.Host
	return r.next.RoundTrip(req)
}

type fetch struct {
	api       *notionapi.Client
	calls     int
	truncated bool
}

// FetchBlocks returns the page's blocks, following pagination and nesting
// list, toggle and quote children a few levels deep.
func (c *Client) FetchBlocks(ctx context.Context, pageID string) (*Page, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}
	f := &fetch{api: c.api}
	blocks, err := f.children(ctx, DashedID(pageID), 0)
	if err != nil {
		return nil, err
	}
	return &Page{Blocks: blocks, Truncated: f.truncated}, nil
}

func (f *fetch) children(ctx context.Context, blockID string, depth int) ([]Block, error) {
	var blocks []Block
	cursor := ""
	for {
		if f.calls >= maxCalls {
			f.truncated = true
			return blocks, nil
		}
		f.calls++

		resp, err := f.api.Block.GetChildren(ctx, notionapi.BlockID(blockID), &notionapi.Pagination{
			StartCursor: notionapi.Cursor(cursor),
			PageSize:    pageSize,
		})
		if err != nil {
			var apiErr *notionapi.Error
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		for _, b := range resp.Results {
			blocks = append(blocks, fromAPI(b))
		}
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = string(resp.NextCursor)
	}

	if depth+1 >= maxDepth {
		return blocks, nil
	}
	for i := range blocks {
		if !blocks[i].HasChildren || !nests(blocks[i].Type) {
			continue
		}
		children, err := f.children(ctx, blocks[i].ID, depth+1)
		if err != nil {
			return nil, err
		}
		blocks[i].Children = children
	}
	return blocks, nil
}

func nests(blockType string) bool {
	switch blockType {
	case "bulleted_list_item", "numbered_list_item", "to_do", "toggle", "quote", "callout":
		return true
	}
	return false
}
