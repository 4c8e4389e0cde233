package schema

// UserProfileTable represents the 'users.profile' table
type UserProfileTable struct {
	Table     string
	ID        string
	AvatarURL string
	CoverURL  string
	UpdatedAt string
}

// UserProfile is the schema definition for users.profile
var UserProfile = UserProfileTable{
	Table:     "users.profile",
	ID:        "id",
	AvatarURL: "avatarurl",
	CoverURL:  "coverurl",
	UpdatedAt: "updatedat",
}
