package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/delivery/internal/server/http/dto"
	"github.com/polkiloo/delivery/internal/usecase"
)

const tokenTypeBearer = "bearer"

// AuthHandler processes registration, login and token refresh.
type AuthHandler struct {
	facade AuthFacade
	logger *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, logger: logger}
}

// Home handles GET /auth/.
func (h *AuthHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ModuleResponse{Message: "Você acessou o módulo de autenticação", Authenticated: false})
}

// SignUp handles POST /auth/sign-up.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	in := usecase.NewUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Active:   true,
	}
	if req.Active != nil {
		in.Active = *req.Active
	}
	if req.Admin != nil {
		in.Admin = *req.Admin
	}

	user, err := h.facade.SignUp(c.Request.Context(), CurrentUser(c), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SignUpResponse{
		Message: "Usuário criado com sucesso",
		UserID:  user.ID,
		Email:   user.Email,
	})
}

// SignIn handles POST /auth/sign-in.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	h.issue(c, req.Email, req.Password)
}

// SignInForm handles POST /auth/sign-in-form using OAuth2 password form fields.
func (h *AuthHandler) SignInForm(c *gin.Context) {
	var form dto.SignInForm
	if err := c.ShouldBind(&form); err != nil || form.Username == "" || form.Password == "" {
		badRequest(c, "username and password are required")
		return
	}
	h.issue(c, form.Username, form.Password)
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := h.facade.Refresh(CurrentUser(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: tokenTypeBearer})
}

func (h *AuthHandler) issue(c *gin.Context, email, password string) {
	token, err := h.facade.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: token, TokenType: tokenTypeBearer})
}
