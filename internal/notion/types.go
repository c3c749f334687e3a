// Defines the remote platform wire types.

package notion

import (
	"encoding/json"
	"time"
)

// PaginatedResponse is the common structure for paginated API responses.
type PaginatedResponse[T any] struct {
	Object     string  `json:"object"`
	Results    []T     `json:"results"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

// SearchResponse is the response from the search endpoint.
type SearchResponse = PaginatedResponse[SearchResult]

// QueryResponse is the response from the database query endpoint.
type QueryResponse = PaginatedResponse[Page]

// BlocksResponse is the response from the block children endpoint.
type BlocksResponse = PaginatedResponse[Block]

// UsersResponse is the response from the user list endpoint.
type UsersResponse = PaginatedResponse[Person]

// SearchResult is one item in search results. The remote API returns
// different structures for pages and databases; Object tells which
// fields are populated.
type SearchResult struct {
	Object         string    `json:"object"` // "page" or "database"
	ID             string    `json:"id"`
	CreatedTime    time.Time `json:"created_time"`
	LastEditedTime time.Time `json:"last_edited_time"`
	Parent         Parent    `json:"parent"`

	// For pages the properties carry PropertyValue, for databases
	// PropertyDefinition. Parsed lazily based on Object.
	PropertiesRaw json.RawMessage `json:"properties,omitempty"`

	// For databases only.
	Title       []RichText `json:"title,omitempty"`
	Description []RichText `json:"description,omitempty"`
}

// Parent identifies the container of a page, database or block.
type Parent struct {
	Type       string `json:"type"` // "database_id", "page_id", "workspace", "block_id"
	DatabaseID string `json:"database_id,omitempty"`
	PageID     string `json:"page_id,omitempty"`
	BlockID    string `json:"block_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

// Database is a remote table whose columns are property definitions
// keyed by display name.
type Database struct {
	Object         string                        `json:"object"`
	ID             string                        `json:"id"`
	CreatedTime    time.Time                     `json:"created_time"`
	LastEditedTime time.Time                     `json:"last_edited_time"`
	Title          []RichText                    `json:"title"`
	Description    []RichText                    `json:"description"`
	Properties     map[string]PropertyDefinition `json:"properties"`
	Parent         Parent                        `json:"parent"`
	URL            string                        `json:"url"`
	Archived       bool                          `json:"archived"`
	IsInline       bool                          `json:"is_inline"`
}

// PropertyDefinition describes one column of a database: its stable
// remote ID, display name, type discriminator and per-type
// configuration. Exactly one of the type-specific fields is set,
// matching Type. The same shape is used for create/update requests,
// where ID is empty and the remote side assigns it.
type PropertyDefinition struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`

	Title          *struct{}       `json:"title,omitempty"`
	RichText       *struct{}       `json:"rich_text,omitempty"`
	Number         *NumberConfig   `json:"number,omitempty"`
	Select         *SelectConfig   `json:"select,omitempty"`
	MultiSelect    *SelectConfig   `json:"multi_select,omitempty"`
	Status         *StatusConfig   `json:"status,omitempty"`
	Date           *struct{}       `json:"date,omitempty"`
	People         *struct{}       `json:"people,omitempty"`
	Files          *struct{}       `json:"files,omitempty"`
	Checkbox       *struct{}       `json:"checkbox,omitempty"`
	URL            *struct{}       `json:"url,omitempty"`
	Email          *struct{}       `json:"email,omitempty"`
	PhoneNumber    *struct{}       `json:"phone_number,omitempty"`
	Formula        *FormulaConfig  `json:"formula,omitempty"`
	Relation       *RelationConfig `json:"relation,omitempty"`
	Rollup         *RollupConfig   `json:"rollup,omitempty"`
	CreatedTime    *struct{}       `json:"created_time,omitempty"`
	CreatedBy      *struct{}       `json:"created_by,omitempty"`
	LastEditedTime *struct{}       `json:"last_edited_time,omitempty"`
	LastEditedBy   *struct{}       `json:"last_edited_by,omitempty"`
	UniqueID       *UniqueIDConfig `json:"unique_id,omitempty"`
}

// NumberConfig configures a number property.
type NumberConfig struct {
	Format string `json:"format,omitempty"` // number, percent, dollar, ...
}

// SelectConfig configures a select or multi_select property.
type SelectConfig struct {
	Options []SelectOption `json:"options"`
}

// SelectOption is one choice of a select vocabulary.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// StatusConfig configures a status property. The remote platform owns
// status options and groups; they are read-only through the API.
type StatusConfig struct {
	Options []SelectOption `json:"options,omitempty"`
	Groups  []StatusGroup  `json:"groups,omitempty"`
}

// StatusGroup is a named, colored group of status options.
type StatusGroup struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	Color     string   `json:"color,omitempty"`
	OptionIDs []string `json:"option_ids,omitempty"`
}

// FormulaConfig configures a formula property.
type FormulaConfig struct {
	Expression string `json:"expression"`
}

// RelationConfig configures a relation property.
type RelationConfig struct {
	DatabaseID     string              `json:"database_id"`
	Type           string              `json:"type,omitempty"` // "single_property" or "dual_property"
	SingleProperty *struct{}           `json:"single_property,omitempty"`
	DualProperty   *DualPropertyConfig `json:"dual_property,omitempty"`
}

// DualPropertyConfig names the synced mirror property of a dual relation.
type DualPropertyConfig struct {
	SyncedPropertyName string `json:"synced_property_name,omitempty"`
	SyncedPropertyID   string `json:"synced_property_id,omitempty"`
}

// RollupConfig configures a rollup property.
type RollupConfig struct {
	RelationPropertyName string `json:"relation_property_name,omitempty"`
	RelationPropertyID   string `json:"relation_property_id,omitempty"`
	RollupPropertyName   string `json:"rollup_property_name,omitempty"`
	RollupPropertyID     string `json:"rollup_property_id,omitempty"`
	Function             string `json:"function,omitempty"` // count, sum, average, ...
}

// UniqueIDConfig configures a unique_id property.
type UniqueIDConfig struct {
	Prefix string `json:"prefix,omitempty"`
}

// Page is a remote record (a database row or a standalone page).
type Page struct {
	Object         string                   `json:"object"`
	ID             string                   `json:"id"`
	CreatedTime    time.Time                `json:"created_time"`
	LastEditedTime time.Time                `json:"last_edited_time"`
	Parent         Parent                   `json:"parent"`
	Archived       bool                     `json:"archived"`
	Properties     map[string]PropertyValue `json:"properties"`
	URL            string                   `json:"url"`
	Icon           *Icon                    `json:"icon,omitempty"`
	Cover          *FileRef                 `json:"cover,omitempty"`
}

// Icon is a page or database icon.
type Icon struct {
	Type     string   `json:"type"` // "emoji", "external", "file"
	Emoji    string   `json:"emoji,omitempty"`
	External *FileRef `json:"external,omitempty"`
	File     *FileRef `json:"file,omitempty"`
}

// PropertyValue is one property of a page. Type selects which value
// field is populated. Pointer fields distinguish "present but null"
// from absent.
type PropertyValue struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`

	Title          []RichText      `json:"title,omitempty"`
	RichText       []RichText      `json:"rich_text,omitempty"`
	Number         *float64        `json:"number,omitempty"`
	Select         *SelectOption   `json:"select,omitempty"`
	MultiSelect    []SelectOption  `json:"multi_select,omitempty"`
	Status         *SelectOption   `json:"status,omitempty"`
	Date           *DateValue      `json:"date,omitempty"`
	People         []Person        `json:"people,omitempty"`
	Files          []FileValue     `json:"files,omitempty"`
	Checkbox       *bool           `json:"checkbox,omitempty"`
	URL            *string         `json:"url,omitempty"`
	Email          *string         `json:"email,omitempty"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	Formula        *FormulaValue   `json:"formula,omitempty"`
	Relation       []RelationValue `json:"relation,omitempty"`
	HasMore        bool            `json:"has_more,omitempty"`
	Rollup         *RollupValue    `json:"rollup,omitempty"`
	CreatedTime    *time.Time      `json:"created_time,omitempty"`
	CreatedBy      *Person         `json:"created_by,omitempty"`
	LastEditedTime *time.Time      `json:"last_edited_time,omitempty"`
	LastEditedBy   *Person         `json:"last_edited_by,omitempty"`
	UniqueID       *UniqueIDValue  `json:"unique_id,omitempty"`
}

// MarshalJSON keeps cleared selections explicit: a select property with
// a nil option must serialize as {"select": null}, not omit the key.
func (p PropertyValue) MarshalJSON() ([]byte, error) {
	type alias PropertyValue
	if p.Type == "select" && p.Select == nil {
		return []byte(`{"select":null}`), nil
	}
	if p.Type == "status" && p.Status == nil {
		return []byte(`{"status":null}`), nil
	}
	return json.Marshal(alias(p))
}

// RichText is one span of formatted text content.
type RichText struct {
	Type        string       `json:"type,omitempty"` // "text", "mention", "equation"
	Text        *TextContent `json:"text,omitempty"`
	Mention     *Mention     `json:"mention,omitempty"`
	Equation    *Equation    `json:"equation,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
	Href        *string      `json:"href,omitempty"`
}

// TextContent is the plain text payload of a text span.
type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

// Link is a hyperlink attached to a text span.
type Link struct {
	URL string `json:"url"`
}

// Mention references a user, page, database or date inside rich text.
type Mention struct {
	Type     string     `json:"type"`
	User     *Person    `json:"user,omitempty"`
	Page     *ObjectRef `json:"page,omitempty"`
	Database *ObjectRef `json:"database,omitempty"`
	Date     *DateValue `json:"date,omitempty"`
}

// ObjectRef is a bare reference to a remote object by ID.
type ObjectRef struct {
	ID string `json:"id"`
}

// Equation is a LaTeX equation span.
type Equation struct {
	Expression string `json:"expression"`
}

// Annotations is the text formatting of a rich text span.
type Annotations struct {
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Underline     bool   `json:"underline,omitempty"`
	Code          bool   `json:"code,omitempty"`
	Color         string `json:"color,omitempty"`
}

// DateValue is a date or date range property value.
type DateValue struct {
	Start    string  `json:"start"`
	End      *string `json:"end,omitempty"`
	TimeZone *string `json:"time_zone,omitempty"`
}

// FormulaValue is the computed result of a formula property.
type FormulaValue struct {
	Type    string     `json:"type"` // "string", "number", "boolean", "date"
	String  *string    `json:"string,omitempty"`
	Number  *float64   `json:"number,omitempty"`
	Boolean *bool      `json:"boolean,omitempty"`
	Date    *DateValue `json:"date,omitempty"`
}

// RelationValue references one related page.
type RelationValue struct {
	ID string `json:"id"`
}

// RollupValue is the computed result of a rollup property.
type RollupValue struct {
	Type     string          `json:"type"` // "number", "date", "array", ...
	Number   *float64        `json:"number,omitempty"`
	Date     *DateValue      `json:"date,omitempty"`
	Array    []PropertyValue `json:"array,omitempty"`
	Function string          `json:"function,omitempty"`
}

// Person is a remote user reference.
type Person struct {
	Object    string         `json:"object,omitempty"`
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	AvatarURL *string        `json:"avatar_url,omitempty"`
	Type      string         `json:"type,omitempty"` // "person" or "bot"
	Person    *PersonDetails `json:"person,omitempty"`
}

// PersonDetails carries person-specific details.
type PersonDetails struct {
	Email string `json:"email,omitempty"`
}

// FileValue is a file property value element.
type FileValue struct {
	Name     string   `json:"name,omitempty"`
	Type     string   `json:"type,omitempty"` // "file" or "external"
	File     *FileRef `json:"file,omitempty"`
	External *FileRef `json:"external,omitempty"`
}

// FileRef points at hosted or external file content.
type FileRef struct {
	URL        string     `json:"url"`
	ExpiryTime *time.Time `json:"expiry_time,omitempty"`
}

// UniqueIDValue is a unique_id property value.
type UniqueIDValue struct {
	Prefix *string `json:"prefix,omitempty"`
	Number int     `json:"number"`
}

// Block is one unit of page content. Only the content field matching
// Type is populated; the mapping engine never looks inside blocks, the
// adapter only lists and creates them.
type Block struct {
	Object         string    `json:"object,omitempty"`
	ID             string    `json:"id,omitempty"`
	Parent         Parent    `json:"parent,omitempty"`
	Type           string    `json:"type"`
	CreatedTime    time.Time `json:"created_time,omitzero"`
	LastEditedTime time.Time `json:"last_edited_time,omitzero"`
	Archived       bool      `json:"archived,omitempty"`
	HasChildren    bool      `json:"has_children,omitempty"`

	Paragraph        *TextBlock `json:"paragraph,omitempty"`
	Heading1         *TextBlock `json:"heading_1,omitempty"`
	Heading2         *TextBlock `json:"heading_2,omitempty"`
	Heading3         *TextBlock `json:"heading_3,omitempty"`
	BulletedListItem *TextBlock `json:"bulleted_list_item,omitempty"`
	NumberedListItem *TextBlock `json:"numbered_list_item,omitempty"`
	ToDo             *ToDoBlock `json:"to_do,omitempty"`
	Quote            *TextBlock `json:"quote,omitempty"`
	Code             *CodeBlock `json:"code,omitempty"`
	Divider          *struct{}  `json:"divider,omitempty"`

	// Populated by recursive child listing, not by the wire format.
	Children []Block `json:"-"`
}

// TextBlock is the shared shape of paragraph, heading, list item and
// quote blocks.
type TextBlock struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

// ToDoBlock is a to-do list item.
type ToDoBlock struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
	Color    string     `json:"color,omitempty"`
}

// CodeBlock is a fenced code block.
type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Caption  []RichText `json:"caption,omitempty"`
	Language string     `json:"language,omitempty"`
}

// Error is a remote API error response.
type Error struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
