package schema

// CoreMediaItemTable represents the 'core.mediaitem' table
type CoreMediaItemTable struct {
	Table      string
	ID         string
	MemorialID string
	Kind       string
	URL        string
	FileName   string
	CreatedAt  string
}

// CoreMediaItem is the schema definition for core.mediaitem
var CoreMediaItem = CoreMediaItemTable{
	Table:      "core.mediaitem",
	ID:         "id",
	MemorialID: "memorialid",
	Kind:       "kind",
	URL:        "url",
	FileName:   "filename",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t CoreMediaItemTable) Columns() []string {
	return []string{
		t.ID, t.MemorialID, t.Kind, t.URL, t.FileName, t.CreatedAt,
	}
}
