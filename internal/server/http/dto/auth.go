package dto

// AuthRequest is the operator login payload. Passwords longer than 72 bytes cannot be hashed by bcrypt.
type AuthRequest struct {
	Login    string `json:"login" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}
