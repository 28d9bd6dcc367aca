package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/sessions"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/users"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/validation"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/logger"
)

// AuthHandler serves registration, login, logout and the current-user lookup.
type AuthHandler struct {
	users *users.Service
}

func NewAuthHandler(u *users.Service) *AuthHandler {
	return &AuthHandler{users: u}
}

// Register mounts the auth routes on rg. Extra middleware (rate limiting) applies
// to register and login only.
func (h *AuthHandler) Register(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	rg.POST("/register", chain(mw, h.RegisterUser)...)
	rg.POST("/login", chain(mw, h.Login)...)
	rg.POST("/logout", h.Logout)
	rg.GET("/user", h.CurrentUser)
}

// RegisterUser creates an account and logs the new user in.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var in users.RegisterInput
	if fe := validation.Check(c.ShouldBindJSON(&in), &in); fe != nil {
		c.JSON(http.StatusBadRequest, fe)
		return
	}
	u, err := h.users.Register(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, validation.FieldError{Field: "username", Message: "Username already exists"})
			return
		}
		internalError(c, "register", err)
		return
	}
	if err := sessions.SetLoginUser(c, u.ID); err != nil {
		internalError(c, "register: save session", err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in users.LoginInput
	if fe := validation.Check(c.ShouldBindJSON(&in), &in); fe != nil {
		c.JSON(http.StatusBadRequest, fe)
		return
	}
	u, err := h.users.Authenticate(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
			return
		}
		internalError(c, "login", err)
		return
	}
	if err := sessions.SetLoginUser(c, u.ID); err != nil {
		internalError(c, "login: save session", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Logout always succeeds, even without a session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := sessions.ClearSession(c); err != nil {
		logger.Warnf("logout: clear session: %v", err)
	}
	c.Status(http.StatusOK)
}

// CurrentUser returns the logged-in user. A session whose user no longer exists
// is cleared.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	id, ok := sessions.GetLoginUserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	u, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		internalError(c, "current user", err)
		return
	}
	if u == nil {
		if err := sessions.ClearSession(c); err != nil {
			logger.Warnf("current user: clear stale session: %v", err)
		}
		unauthorized(c)
		return
	}
	c.JSON(http.StatusOK, u)
}

// chain returns mw followed by h without aliasing mw.
func chain(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	return append(append(out, mw...), h)
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
}

func internalError(c *gin.Context, op string, err error) {
	logger.Errorf("%s: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
