package checkup

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AaSu9/Aamcare/internal/handler"
	"github.com/AaSu9/Aamcare/internal/middleware"
	"github.com/AaSu9/Aamcare/internal/model"
	checkupService "github.com/AaSu9/Aamcare/internal/service/checkup"
	profileService "github.com/AaSu9/Aamcare/internal/service/profile"
)

type Handler struct {
	service    *checkupService.Service
	profileSvc *profileService.Service
}

func NewHandler(service *checkupService.Service, profileSvc *profileService.Service) *Handler {
	return &Handler{service: service, profileSvc: profileSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	checkups := r.Group("/checkups")
	{
		checkups.POST("", h.Submit)
		checkups.GET("", h.List)
		checkups.PUT("/:id", h.Update)
		checkups.GET("/:id/recommendations", h.Recommendations)
		checkups.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Submit(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	var req model.SubmitCheckupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	profile, err := h.profileSvc.GetForAccount(c.Request.Context(), accountID)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), profile, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(resp))
}

func (h *Handler) List(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	profile, err := h.profileSvc.GetForAccount(c.Request.Context(), accountID)
	if err != nil {
		c.Error(err)
		return
	}

	checkups, err := h.service.ListForProfile(c.Request.Context(), profile.ID())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(checkups))
}

func (h *Handler) Update(c *gin.Context) {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid checkup ID"))
		return
	}

	var req model.SubmitCheckupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	profile, err := h.profileSvc.GetForAccount(c.Request.Context(), accountID)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), profile, id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) Recommendations(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid checkup ID"))
		return
	}

	recs, err := h.service.Recommendations(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(recs))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid checkup ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
