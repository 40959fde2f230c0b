package auth

import (
	"errors"
	"net/http"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LoginDTO struct {
	Password string `json:"password" form:"password"`
}

type Handler struct {
	svc      *Service
	sessions middleware.SessionValidator
	secure   bool
	log      *zap.Logger
}

// NewHandler builds the handler; secure marks the session cookie Secure.
func NewHandler(svc *Service, sessions middleware.SessionValidator, secure bool, log *zap.Logger) *Handler {
	return &Handler{svc: svc, sessions: sessions, secure: secure, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/login", h.login)
	g.GET("/check", h.check)
	g.POST("/logout", h.logout)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	token, err := h.svc.Login(dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			h.log.Info("admin login rejected", zap.String("ip", c.ClientIP()))
			response.UnauthorizedMsg(c, "Invalid password")
			return
		}
		h.log.Error("issue admin session", zap.Error(err))
		response.InternalError(c, "Failed to create session")
		return
	}
	h.setCookie(c, token, int(h.svc.TTL().Seconds()))
	response.Success(c)
}

func (h *Handler) check(c *gin.Context) {
	if !middleware.IsAuthenticated(c, h.sessions) {
		response.Error(c, http.StatusUnauthorized, "")
		return
	}
	response.Success(c)
}

func (h *Handler) logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.CookieName); err == nil && token != "" {
		if err := h.svc.Logout(token); err != nil {
			h.log.Warn("revoke admin session", zap.Error(err))
		}
	}
	h.setCookie(c, "", -1)
	response.Success(c)
}

func (h *Handler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieName, value, maxAge, "/", "", h.secure, true)
}
