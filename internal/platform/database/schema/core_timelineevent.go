package schema

// CoreTimelineEventTable represents the 'core.timelineevent' table
type CoreTimelineEventTable struct {
	Table       string
	ID          string
	MemorialID  string
	Year        string
	Title       string
	Description string
	CreatedAt   string
}

// CoreTimelineEvent is the schema definition for core.timelineevent
var CoreTimelineEvent = CoreTimelineEventTable{
	Table:       "core.timelineevent",
	ID:          "id",
	MemorialID:  "memorialid",
	Year:        "year",
	Title:       "title",
	Description: "description",
	CreatedAt:   "createdat",
}

// Columns returns all standard column names
func (t CoreTimelineEventTable) Columns() []string {
	return []string{
		t.ID, t.MemorialID, t.Year, t.Title, t.Description, t.CreatedAt,
	}
}
