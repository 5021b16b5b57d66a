package dto

// LoginInput accepts either the username or the email as identifier.
type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
