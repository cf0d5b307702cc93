package domain

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Session is the persisted authenticated identity.
type Session struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}
