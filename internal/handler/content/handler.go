package content

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AaSu9/Aamcare/internal/handler"
	"github.com/AaSu9/Aamcare/internal/middleware"
	"github.com/AaSu9/Aamcare/internal/model"
	contentService "github.com/AaSu9/Aamcare/internal/service/content"
	profileService "github.com/AaSu9/Aamcare/internal/service/profile"
)

type Handler struct {
	service    *contentService.Service
	profileSvc *profileService.Service
}

func NewHandler(service *contentService.Service, profileSvc *profileService.Service) *Handler {
	return &Handler{service: service, profileSvc: profileSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	content := r.Group("/content")
	{
		content.GET("", h.List)
		content.GET("/for-me", h.ForMe)
		content.GET("/tips/:week", h.TipsForWeek)
	}
}

func (h *Handler) List(c *gin.Context) {
	var filter model.ContentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	items, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}

// ForMe returns content targeted at the caller's current pregnancy or
// postpartum stage.
func (h *Handler) ForMe(c *gin.Context) {
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

	items, err := h.service.ForProfile(c.Request.Context(), profile)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}

func (h *Handler) TipsForWeek(c *gin.Context) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 || week > 40 {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid week"))
		return
	}

	tips, err := h.service.TipsForWeek(c.Request.Context(), week)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tips))
}
