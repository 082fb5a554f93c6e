package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AaSu9/Aamcare/internal/handler"
	"github.com/AaSu9/Aamcare/internal/middleware"
	notificationService "github.com/AaSu9/Aamcare/internal/service/notification"
	profileService "github.com/AaSu9/Aamcare/internal/service/profile"
)

type Handler struct {
	service    *notificationService.Service
	profileSvc *profileService.Service
}

func NewHandler(service *notificationService.Service, profileSvc *profileService.Service) *Handler {
	return &Handler{service: service, profileSvc: profileSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/notifications", h.History)
}

// History returns the caller's delivery log.
func (h *Handler) History(c *gin.Context) {
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

	logs, err := h.service.History(c.Request.Context(), profile.ID())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(logs))
}
