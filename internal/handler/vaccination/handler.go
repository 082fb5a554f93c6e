package vaccination

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AaSu9/Aamcare/internal/handler"
	"github.com/AaSu9/Aamcare/internal/middleware"
	"github.com/AaSu9/Aamcare/internal/model"
	profileService "github.com/AaSu9/Aamcare/internal/service/profile"
	vaccinationService "github.com/AaSu9/Aamcare/internal/service/vaccination"
)

type Handler struct {
	service    *vaccinationService.Service
	profileSvc *profileService.Service
}

func NewHandler(service *vaccinationService.Service, profileSvc *profileService.Service) *Handler {
	return &Handler{service: service, profileSvc: profileSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	vaccinations := r.Group("/vaccinations")
	{
		vaccinations.GET("/tracker", h.Tracker)
		vaccinations.PATCH("/:id", h.UpdateStatus)
	}
}

// Tracker returns the authenticated account's full schedule with summary
// counts, refreshing overdue statuses on the way out.
func (h *Handler) Tracker(c *gin.Context) {
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

	records, stats, err := h.service.Tracker(c.Request.Context(), profile.ID())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"records": records,
		"stats":   stats,
	}))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid vaccination record ID"))
		return
	}

	var req model.UpdateVaccinationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rec, err := h.service.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(rec))
}
