package users

import "time"

// User is an account created on first Google sign-in.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	GoogleID  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}

// Profile is what GET /me returns.
type Profile struct {
	User
	ResumeCount int `json:"resumeCount"`
}
