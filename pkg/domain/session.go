package domain

// Session is the authenticated identity: an opaque bearer token plus the
// profile it belongs to. Token and User are both set or both empty.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Valid reports whether the session carries a token.
func (s Session) Valid() bool {
	return s.Token != ""
}
