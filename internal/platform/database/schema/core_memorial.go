package schema

// CoreMemorialTable represents the 'core.memorial' table
type CoreMemorialTable struct {
	Table           string
	ID              string
	UserID          string
	Name            string
	Relationship    string
	BirthDate       string
	DeathDate       string
	Biography       string
	IsPublic        string
	Status          string
	CoverImageURL   string
	ProfileImageURL string
	CreatedAt       string
	UpdatedAt       string
}

// CoreMemorial is the schema definition for core.memorial
var CoreMemorial = CoreMemorialTable{
	Table:           "core.memorial",
	ID:              "id",
	UserID:          "userid",
	Name:            "name",
	Relationship:    "relationship",
	BirthDate:       "birthdate",
	DeathDate:       "deathdate",
	Biography:       "biography",
	IsPublic:        "ispublic",
	Status:          "status",
	CoverImageURL:   "coverimageurl",
	ProfileImageURL: "profileimageurl",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all standard column names
func (t CoreMemorialTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.Name, t.Relationship, t.BirthDate, t.DeathDate,
		t.Biography, t.IsPublic, t.Status, t.CoverImageURL, t.ProfileImageURL,
		t.CreatedAt, t.UpdatedAt,
	}
}
