package model

// Identity is the minimal authenticated caller derived from a valid
// session token. ID is the hex form of the user's ObjectID.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
