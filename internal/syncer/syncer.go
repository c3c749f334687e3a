// Orchestrates schema sync and record upserts over the adapter.

package syncer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maruel/notionsync/internal/notion"
	"github.com/maruel/notionsync/internal/record"
	"github.com/maruel/notionsync/internal/schema"
)

// Syncer drives the mapping engine against a remote database. All
// network traffic goes through the adapter; the engine itself stays
// pure.
type Syncer struct {
	adapter notion.Adapter
}

// New creates a syncer over an adapter.
func New(adapter notion.Adapter) *Syncer {
	return &Syncer{adapter: adapter}
}

// Plan is the outcome of diffing a local schema against the remote
// database it targets.
type Plan struct {
	// DatabaseID is the remote database the plan applies to.
	DatabaseID string
	// Remote is the schema inferred from the remote database.
	Remote *schema.Schema
	// Diffs transform the remote schema into the local one.
	Diffs []schema.Diff
}

// Plan fetches the remote database, infers its schema and diffs it
// against the desired local schema.
func (s *Syncer) Plan(ctx context.Context, databaseID string, local *schema.Schema) (*Plan, error) {
	db, err := s.adapter.GetDatabase(ctx, databaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch database %s: %w", databaseID, err)
	}
	remote := schema.Infer(db.Properties, databaseID)
	diffs := schema.DiffSchemas(remote, local)
	slog.DebugContext(ctx, "Planned schema changes", "database", databaseID, "diffs", len(diffs))
	return &Plan{DatabaseID: databaseID, Remote: remote, Diffs: diffs}, nil
}

// Apply plans and pushes the property definition changes needed to
// make the remote database match the local schema, under the given
// conflict strategy. Returns the executed plan. No remote call is
// made when the plan is empty.
func (s *Syncer) Apply(ctx context.Context, databaseID string, local *schema.Schema, strategy schema.Strategy) (*Plan, error) {
	plan, err := s.Plan(ctx, databaseID, local)
	if err != nil {
		return nil, err
	}
	updates, err := schema.ApplyChanges(local, plan.Diffs, strategy)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		slog.InfoContext(ctx, "Remote schema already up to date", "database", databaseID)
		return plan, nil
	}
	if _, err := s.adapter.UpdateDatabase(ctx, databaseID, &notion.UpdateDatabaseRequest{Properties: updates}); err != nil {
		return nil, fmt.Errorf("failed to update database %s: %w", databaseID, err)
	}
	slog.InfoContext(ctx, "Applied schema changes", "database", databaseID, "properties", len(updates))
	return plan, nil
}

// Upsert creates or updates the record identified by the unique key
// values in data. The record is located with an equality filter over
// the unique keys; at most one match is expected, extra matches are
// left untouched and logged.
func (s *Syncer) Upsert(ctx context.Context, databaseID string, sch *schema.Schema, uniqueKeys []string, data map[string]any) (*notion.Page, error) {
	filter, err := record.BuildUpsertFilter(sch, uniqueKeys, data)
	if err != nil {
		return nil, err
	}
	resp, err := s.adapter.QueryDatabase(ctx, databaseID, &notion.QueryOptions{Filter: filter, PageSize: 2})
	if err != nil {
		return nil, fmt.Errorf("failed to query database %s: %w", databaseID, err)
	}
	properties := record.Dehydrate(sch, data)
	if len(resp.Results) == 0 {
		page, err := s.adapter.CreatePage(ctx, &notion.CreatePageRequest{
			Parent:     notion.Parent{Type: "database_id", DatabaseID: databaseID},
			Properties: properties,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create record: %w", err)
		}
		slog.InfoContext(ctx, "Created record", "database", databaseID, "page", page.ID)
		return page, nil
	}
	if len(resp.Results) > 1 {
		slog.WarnContext(ctx, "Upsert filter matched multiple records, updating the first", "database", databaseID)
	}
	page, err := s.adapter.UpdatePage(ctx, resp.Results[0].ID, &notion.UpdatePageRequest{Properties: properties})
	if err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	slog.InfoContext(ctx, "Updated record", "database", databaseID, "page", page.ID)
	return page, nil
}

// Records fetches every record of the database and hydrates it into
// local shape under the schema.
func (s *Syncer) Records(ctx context.Context, databaseID string, sch *schema.Schema) ([]map[string]any, error) {
	pages, err := s.adapter.QueryDatabaseAll(ctx, databaseID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query database %s: %w", databaseID, err)
	}
	out := make([]map[string]any, 0, len(pages))
	for i := range pages {
		out = append(out, record.Hydrate(sch, pages[i].Properties))
	}
	return out, nil
}
