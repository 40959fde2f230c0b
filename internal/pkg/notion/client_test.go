package notion

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/folio-space/core/internal/config"
	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/require"
)

const pageID = "0123456789abcdef0123456789abcdef"

func fakeNotion(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.NotionConfig{Token: "secret_tok", BaseURL: srv.URL, Version: "2022-06-28"})
}

func TestFetchBlocks_PagesAndNests(t *testing.T) {
	var (
		mu      sync.Mutex
		headers []http.Header
	)
	c := fakeNotion(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers = append(headers, r.Header.Clone())
		mu.Unlock()

		switch {
		case r.URL.Path == "/v1/blocks/"+DashedID(pageID)+"/children" && r.URL.Query().Get("start_cursor") == "":
			fmt.Fprint(w, `{"results":[{"id":"b1","type":"heading_1","heading_1":{"rich_text":[{"plain_text":"Intro"}]}}],"has_more":true,"next_cursor":"c2"}`)
		case r.URL.Path == "/v1/blocks/"+DashedID(pageID)+"/children":
			require.Equal(t, "c2", r.URL.Query().Get("start_cursor"))
			fmt.Fprint(w, `{"results":[{"id":"b2","type":"bulleted_list_item","has_children":true,"bulleted_list_item":{"rich_text":[{"plain_text":"parent"}]}}],"has_more":false}`)
		case r.URL.Path == "/v1/blocks/b2/children":
			fmt.Fprint(w, `{"results":[{"id":"b3","type":"bulleted_list_item","bulleted_list_item":{"rich_text":[{"plain_text":"child"}]}}],"has_more":false}`)
		default:
			http.NotFound(w, r)
		}
	})

	page, err := c.FetchBlocks(context.Background(), pageID)
	require.NoError(t, err)
	require.False(t, page.Truncated)
	blocks := page.Blocks
	require.Len(t, blocks, 2)
	require.Equal(t, "heading_1", blocks[0].Type)
	require.Equal(t, "Intro", blocks[0].Content.RichText[0].PlainText)
	require.Len(t, blocks[1].Children, 1)
	require.Equal(t, "child", blocks[1].Children[0].Content.RichText[0].PlainText)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, headers, 3)
	for _, h := range headers {
		require.Equal(t, "Bearer secret_tok", h.Get("Authorization"))
		require.Equal(t, "2022-06-28", h.Get("Notion-Version"))
	}
}

func TestFetchBlocks_Errors(t *testing.T) {
	c := fakeNotion(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"object":"error","status":404,"code":"object_not_found","message":"Could not find block"}`)
	})
	_, err := c.FetchBlocks(context.Background(), pageID)
	require.ErrorIs(t, err, ErrNotFound)

	c = fakeNotion(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`)
	})
	_, err = c.FetchBlocks(context.Background(), pageID)
	var apiErr *notionapi.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "unauthorized", string(apiErr.Code))

	_, err = NewClient(config.NotionConfig{BaseURL: "http://unused"}).FetchBlocks(context.Background(), pageID)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestFetchBlocks_StopsAtCallBudget(t *testing.T) {
	var calls int
	c := fakeNotion(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, `{"results":[{"id":"p%d","type":"paragraph","paragraph":{"rich_text":[{"plain_text":"x"}]}}],"has_more":true,"next_cursor":"c%d"}`, calls, calls)
	})

	page, err := c.FetchBlocks(context.Background(), pageID)
	require.NoError(t, err)
	require.True(t, page.Truncated)
	require.Len(t, page.Blocks, maxCalls)
	require.Equal(t, maxCalls, calls)
}
