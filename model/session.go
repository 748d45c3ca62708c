package model

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AuthResult is returned by a successful login or registration.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SessionState is a read-only snapshot of the current identity. Token and
// User are either both set or both empty.
type SessionState struct {
	Token    string `json:"token,omitempty"`
	User     *User  `json:"user,omitempty"`
	IsAuthed bool   `json:"isAuthed"`
	IsAdmin  bool   `json:"isAdmin"`
	Loading  bool   `json:"loading"`
	Error    string `json:"error,omitempty"`
}

type Profile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}
