package models

// User represents a user in the system
type User struct {
	Username  string `json:"username" db:"username"`
	Name      string `json:"name" db:"name"`
	AvatarURL string `json:"avatar_url" db:"avatar_url"`
	// Password holds the bcrypt hash and is never serialized
	Password *string `json:"-" db:"password"`
}

// PasswordHash returns the stored hash or "" when the user has none
func (u *User) PasswordHash() string {
	if u.Password == nil {
		return ""
	}
	return *u.Password
}

// UserRecord represents a user line from a seed NDJSON file
type UserRecord struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Password  string `json:"password"`
}
