// Defines the adapter boundary the mapping engine is written against.

package notion

import "context"

// Adapter is the remote platform boundary. The schema and record
// packages are pure; everything that touches the network goes through
// this interface so the engine stays testable without a live token.
type Adapter interface {
	GetDatabase(ctx context.Context, id string) (*Database, error)
	CreateDatabase(ctx context.Context, req *CreateDatabaseRequest) (*Database, error)
	UpdateDatabase(ctx context.Context, id string, req *UpdateDatabaseRequest) (*Database, error)
	QueryDatabase(ctx context.Context, databaseID string, opts *QueryOptions) (*QueryResponse, error)
	QueryDatabaseAll(ctx context.Context, databaseID string, opts *QueryOptions) ([]Page, error)

	GetPage(ctx context.Context, id string) (*Page, error)
	CreatePage(ctx context.Context, req *CreatePageRequest) (*Page, error)
	UpdatePage(ctx context.Context, id string, req *UpdatePageRequest) (*Page, error)
	ArchivePage(ctx context.Context, id string) (*Page, error)
	RestorePage(ctx context.Context, id string) (*Page, error)

	GetBlockChildren(ctx context.Context, blockID, cursor string) (*BlocksResponse, error)
	GetBlockChildrenAll(ctx context.Context, blockID string) ([]Block, error)
	AppendBlockChildren(ctx context.Context, blockID string, children []Block) ([]Block, error)
	DeleteBlock(ctx context.Context, blockID string) error

	GetUser(ctx context.Context, id string) (*Person, error)
	GetMe(ctx context.Context) (*Person, error)
	Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error)
}

var _ Adapter = (*Client)(nil)
