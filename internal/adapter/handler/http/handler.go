package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,

	domain.ErrUnauthorized:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrNoUpdatedData: http.StatusBadRequest,
	domain.ErrBadRequest:    http.StatusBadRequest,

	domain.ErrEmptyCart:            http.StatusBadRequest,
	domain.ErrNegativeAmount:       http.StatusUnprocessableEntity,
	domain.ErrCouponInvalid:        http.StatusUnprocessableEntity,
	domain.ErrAffiliateInvalid:     http.StatusUnprocessableEntity,
	domain.ErrUnknownPaymentMethod: http.StatusUnprocessableEntity,
	domain.ErrIllegalTransition:    http.StatusConflict,
	domain.ErrChargeAlreadyExists:  http.StatusConflict,
	domain.ErrOrderLocked:          http.StatusLocked,

	domain.ErrGatewayRejected:       http.StatusPaymentRequired,
	domain.ErrGatewayUnavailable:    http.StatusServiceUnavailable,
	domain.ErrMalformedNotification: http.StatusBadRequest,
}

// statusFromError resolves wrapped sentinels too; gateway errors carry the
// provider's reason around the sentinel.
func statusFromError(err error) int {
	for sentinel, code := range errorStatusMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return http.StatusInternalServerError
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode := statusFromError(err)
	if statusCode == http.StatusInternalServerError {
		h.logger.Error("error processing request", zap.Error(err))
	}
	ctx.JSON(statusCode, gin.H{"error": err.Error()})
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
