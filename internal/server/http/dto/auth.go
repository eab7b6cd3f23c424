package dto

// SignUpRequest describes the user registration payload.
type SignUpRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
	Active   *bool  `json:"ativo"`
	Admin    *bool  `json:"admin"`
}

// SignInRequest describes email/password credentials.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// SignInForm carries OAuth2 password-flow form fields.
type SignInForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// TokenResponse is returned by sign-in and refresh.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SignUpResponse confirms a created user.
type SignUpResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
}

// ModuleResponse answers the unauthenticated auth probe.
type ModuleResponse struct {
	Message       string `json:"message"`
	Authenticated bool   `json:"authenticated"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
