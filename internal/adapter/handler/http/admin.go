package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/port"
	"go.uber.org/zap"
)

type AdminHandler struct {
	Handler
	service port.Service
}

func NewAdminHandler(service port.Service, logger *zap.Logger) (*AdminHandler, error) {
	return &AdminHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func adminActor(ctx *gin.Context) string {
	return fmt.Sprintf("admin:%d", getAuthPayload(ctx).UserID)
}

func (ah *AdminHandler) ListOrders(ctx *gin.Context) {
	list, err := ah.service.ListOrders(ctx)
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	result := make([]OrderResp, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResp(o))
	}
	ah.handleSuccess(ctx, result)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

func (ah *AdminHandler) UpdateOrderStatus(ctx *gin.Context) {
	number, err := orderNumberParam(ctx)
	if err != nil {
		ah.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	req := UpdateStatusRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ah.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := ah.service.UpdateOrderStatus(ctx, number,
		domain.OrderStatus(req.Status), adminActor(ctx), req.Note)
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccess(ctx, newOrderResp(order))
}

type TrackingRequest struct {
	TrackingCode string `json:"trackingCode" binding:"required"`
}

func (ah *AdminHandler) SetTrackingCode(ctx *gin.Context) {
	number, err := orderNumberParam(ctx)
	if err != nil {
		ah.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	req := TrackingRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ah.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := ah.service.SetTrackingCode(ctx, number, req.TrackingCode, adminActor(ctx))
	if err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccess(ctx, newOrderResp(order))
}

func (ah *AdminHandler) DeleteOrder(ctx *gin.Context) {
	number, err := orderNumberParam(ctx)
	if err != nil {
		ah.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	if err := ah.service.DeleteOrder(ctx, number); err != nil {
		ah.handleError(ctx, err)
		return
	}

	ah.handleSuccessWithStatus(ctx, nil, http.StatusNoContent)
}
