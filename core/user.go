package core

// User authenticated caller
type User struct {
	ID string `json:"id"`
}
