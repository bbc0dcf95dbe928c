package model

// Roles known to the resort backend.
const (
	RoleGuest = "GUEST"
	RoleAdmin = "ADMIN"
)

// User is the profile returned by GET /api/users/me.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupRequest is the signup form.
type SignupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
	FullName        string `json:"fullName,omitempty"`
	Phone           string `json:"phone,omitempty"`
}

// AuthTokens is returned by login, signup and refresh.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	TokenType    string `json:"tokenType,omitempty"`
	User         *User  `json:"user,omitempty"`
}

// RefreshRequest is the body of POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
