package model

// User is the session record of the signed-in visitor. It deliberately
// carries only identity fields: no password and no backend token are ever
// kept after login.
type User struct {
	ID    string `json:"id"`    // backend user id (login response user_id)
	Name  string `json:"name"`  // display name
	Email string `json:"email"` // login email
}

// Valid reports whether every identity field is populated. A session is
// either absent or fully populated; partially filled users are rejected.
func (u User) Valid() bool {
	return u.ID != "" && u.Name != "" && u.Email != ""
}
