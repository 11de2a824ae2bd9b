package auth

// LoginRequest represents the input for user login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// ChangePasswordRequest represents the input for POST /users/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" form:"newPassword" binding:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" binding:"required,eqfield=NewPassword"`
}
