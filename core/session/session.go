package session

// Role tags as the backend reports them on the user profile.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is the profile the backend returns alongside a token.
type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload. The backend answers with token and
// profile exactly as for login, so registration auto-adopts the session.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Result is the uniform outcome of every auth operation. Err holds a
// human-readable message when Success is false.
type Result struct {
	Success bool
	User    *User
	Err     string
}

// authResponse is the backend's success payload for all three auth endpoints.
type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func failure(msg string) Result {
	return Result{Err: msg}
}
