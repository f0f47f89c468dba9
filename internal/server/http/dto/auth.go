package dto

// AuthRequest carries staff credentials for register and login.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
