package dto

// LoginRequest carries employee credentials.
type LoginRequest struct {
	Nik      string `json:"nik" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token and the resolved identity.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
