package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AaSu9/Aamcare/internal/handler"
	"github.com/AaSu9/Aamcare/internal/middleware"
	"github.com/AaSu9/Aamcare/internal/model"
	profileService "github.com/AaSu9/Aamcare/internal/service/profile"
)

type Handler struct {
	service *profileService.Service
}

func NewHandler(service *profileService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profile")
	{
		profiles.POST("/expectant", h.CreateExpectant)
		profiles.POST("/postpartum", h.CreatePostpartum)
		profiles.GET("", h.Get)
		profiles.PATCH("", h.Update)
		profiles.POST("/give-birth", h.GiveBirth)
		profiles.DELETE("", h.Delete)
	}
}

func (h *Handler) CreateExpectant(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	var req model.CreateExpectantProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	profile, err := h.service.CreateExpectant(c.Request.Context(), accountID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(profile))
}

func (h *Handler) CreatePostpartum(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	var req model.CreatePostpartumProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	profile, err := h.service.CreatePostpartum(c.Request.Context(), accountID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(profile))
}

func (h *Handler) Get(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	profile, err := h.service.GetForAccount(c.Request.Context(), accountID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}

func (h *Handler) Update(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	profile, err := h.service.Update(c.Request.Context(), accountID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}

func (h *Handler) GiveBirth(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	var req model.GiveBirthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	profile, err := h.service.GiveBirth(c.Request.Context(), accountID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}

func (h *Handler) Delete(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), accountID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
