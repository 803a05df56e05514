package models

// Identity is the authenticated user's locally held profile. Exactly one
// Identity is active per client session. The bearer token is kept in memory
// and persisted under its own storage key, not inside the serialized record.
type Identity struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Admin    bool   `json:"is_admin"`
	Token    string `json:"-"`
}
