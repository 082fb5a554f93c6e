package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AaSu9/Aamcare/internal/handler"
	"github.com/AaSu9/Aamcare/internal/middleware"
	"github.com/AaSu9/Aamcare/internal/model"
	accountService "github.com/AaSu9/Aamcare/internal/service/account"
)

type Handler struct {
	service *accountService.Service
}

func NewHandler(service *accountService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the public auth endpoints.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

// RegisterProtectedRoutes wires endpoints that need an authenticated account.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/me", h.Me)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	account, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(account))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) Me(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	account, err := h.service.Get(c.Request.Context(), accountID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(account))
}
