package domain

// User is the profile snapshot returned by the GoBarber API.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// HasAvatar reports whether the user has uploaded an avatar.
func (u User) HasAvatar() bool {
	return u.AvatarURL != ""
}
