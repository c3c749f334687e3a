// Tests for the remote API client over a local test server.

package notion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient(t *testing.T) {
	t.Run("GetDatabase", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/databases/db1" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if got := r.Header.Get("Notion-Version"); got != APIVersion {
				t.Errorf("unexpected version header: %q", got)
			}
			_, _ = io.WriteString(w, `{"object":"database","id":"db1","properties":{"Name":{"id":"t1","name":"Name","type":"title","title":{}}}}`)
		}))
		defer srv.Close()
		c := NewClientWithHTTP(srv.Client(), srv.URL)
		db, err := c.GetDatabase(context.Background(), "db1")
		if err != nil {
			t.Fatal(err)
		}
		if db.ID != "db1" || db.Properties["Name"].Type != "title" {
			t.Errorf("unexpected database: %+v", db)
		}
	})

	t.Run("ErrorDecodesAPIShape", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"object":"error","status":404,"code":"object_not_found","message":"Could not find database"}`)
		}))
		defer srv.Close()
		c := NewClientWithHTTP(srv.Client(), srv.URL)
		_, err := c.GetDatabase(context.Background(), "missing")
		var apiErr *Error
		if !errors.As(err, &apiErr) || apiErr.Code != "object_not_found" {
			t.Errorf("expected an API error, got %v", err)
		}
	})

	t.Run("QueryDatabaseAllPaginates", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			var opts QueryOptions
			if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
				t.Fatal(err)
			}
			switch calls {
			case 1:
				if opts.StartCursor != "" {
					t.Errorf("first call must not carry a cursor, got %q", opts.StartCursor)
				}
				_, _ = io.WriteString(w, `{"object":"list","results":[{"object":"page","id":"p1"}],"next_cursor":"c1","has_more":true}`)
			case 2:
				if opts.StartCursor != "c1" {
					t.Errorf("second call must resume at c1, got %q", opts.StartCursor)
				}
				_, _ = io.WriteString(w, `{"object":"list","results":[{"object":"page","id":"p2"}],"next_cursor":null,"has_more":false}`)
			default:
				t.Errorf("unexpected call %d", calls)
			}
		}))
		defer srv.Close()
		c := NewClientWithHTTP(srv.Client(), srv.URL)
		pages, err := c.QueryDatabaseAll(context.Background(), "db1", nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(pages) != 2 || pages[0].ID != "p1" || pages[1].ID != "p2" {
			t.Errorf("unexpected pages: %+v", pages)
		}
	})

	t.Run("UpdateDatabaseSerializesDeletions", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPatch {
				t.Errorf("unexpected method: %s", r.Method)
			}
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), `"Old":null`) {
				t.Errorf("expected a null property for deletion, got %s", body)
			}
			_, _ = io.WriteString(w, `{"object":"database","id":"db1"}`)
		}))
		defer srv.Close()
		c := NewClientWithHTTP(srv.Client(), srv.URL)
		_, err := c.UpdateDatabase(context.Background(), "db1", &UpdateDatabaseRequest{
			Properties: map[string]*PropertyDefinition{"Old": nil},
		})
		if err != nil {
			t.Fatal(err)
		}
	})
}
