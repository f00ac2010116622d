package handler

import (
	"errors"
	"net/http"

	"parking-lot-service/internal/middleware"
	"parking-lot-service/internal/model"
	"parking-lot-service/internal/service"
	apperrors "parking-lot-service/pkg/app_errors"
	"parking-lot-service/pkg/logger"
	"parking-lot-service/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ParkingLotHandler struct {
	service service.ParkingLotService
}

func NewParkingLotHandler(service service.ParkingLotService) *ParkingLotHandler {
	validator.RegisterGinValidator()
	return &ParkingLotHandler{service: service}
}

func (h *ParkingLotHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/parking-lot", middleware.LogRequestBody())
	{
		router.POST("", h.CreateParkingLot)
		router.PATCH("/:id", h.UpdateParkingLot)
		router.GET("/:id", h.GetParkingLot)
		router.GET("/owner/:id", h.GetParkingLotsByOwner)
	}
}

func (h *ParkingLotHandler) CreateParkingLot(c *gin.Context) {
	var req model.CreateParkingLotRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "CreateParkingLot")
		return
	}

	handleSuccess(c, created, http.StatusCreated)
}

func (h *ParkingLotHandler) UpdateParkingLot(c *gin.Context) {
	id, ok := BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateParkingLotRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err, "UpdateParkingLot")
		return
	}

	handleSuccess(c, updated, http.StatusOK)
}

// GetParkingLot 查無資料時回傳 200 與全 null 的內容
func (h *ParkingLotHandler) GetParkingLot(c *gin.Context) {
	id, ok := BindUUIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "GetParkingLot")
		return
	}

	handleSuccess(c, detail, http.StatusOK)
}

func (h *ParkingLotHandler) GetParkingLotsByOwner(c *gin.Context) {
	ownerID, ok := BindUUIDParam(c, "id")
	if !ok {
		return
	}

	lots, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.handleError(c, err, "GetParkingLotsByOwner")
		return
	}
	if lots == nil {
		lots = []*model.ParkingLotWithKeeperCount{}
	}

	handleSuccess(c, lots, http.StatusOK)
}

// Helper functions

func (h *ParkingLotHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrOwnerRoleRequired):
		log.Warn("Owner role required")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Related user is not having owner role",
		})
	case errors.Is(err, apperrors.ErrImageNotFound):
		log.Warn("Image not found")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image not found",
		})
	case errors.Is(err, apperrors.ErrKeeperNotFound):
		log.Warn("Keeper not found")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Keeper not found",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	case errors.Is(err, apperrors.ErrUserNotFound):
		log.Warn("User not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "User not found",
		})
	case errors.Is(err, apperrors.ErrParkingLotNotFound):
		log.Warn("Parking lot not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Parking lot not found",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
