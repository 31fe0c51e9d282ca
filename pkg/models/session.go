package models

// Session is the at-most-one "currentUser" record: who the current actor is
// and what role they act in.
type Session struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}
