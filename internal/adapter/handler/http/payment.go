package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/port"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Handler
	service port.Service
}

func NewPaymentHandler(service port.Service, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type CreateChargeRequest struct {
	Method string `json:"method" binding:"required"`
	Payer  struct {
		Name      string `json:"name" binding:"required"`
		Email     string `json:"email" binding:"required"`
		Document  string `json:"document"`
		CardToken string `json:"cardToken"`
		CardBrand string `json:"cardBrand"`
		CardLast4 string `json:"cardLast4"`
	} `json:"payer" binding:"required"`
}

type PaymentResp struct {
	Method       string              `json:"method"`
	Status       string              `json:"status"`
	Amount       string              `json:"amount"`
	DueAt        *time.Time          `json:"dueAt,omitempty"`
	ConfirmedAt  *time.Time          `json:"confirmedAt,omitempty"`
	Presentation domain.Presentation `json:"presentation"`
}

func newPaymentResp(p *domain.Payment) PaymentResp {
	return PaymentResp{
		Method:       string(p.Method),
		Status:       string(p.Status),
		Amount:       p.Amount.String(),
		DueAt:        p.DueAt,
		ConfirmedAt:  p.ConfirmedAt,
		Presentation: p.Presentation,
	}
}

func (ph *PaymentHandler) CreateCharge(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	number, err := orderNumberParam(ctx)
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	req := CreateChargeRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	payment, err := ph.service.CreateCharge(ctx, userID, number,
		domain.PaymentMethod(req.Method), domain.PayerInfo{
			Name:      req.Payer.Name,
			Email:     req.Payer.Email,
			Document:  req.Payer.Document,
			CardToken: req.Payer.CardToken,
			CardBrand: req.Payer.CardBrand,
			CardLast4: req.Payer.CardLast4,
		})
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, newPaymentResp(payment), http.StatusCreated)
}

// RefreshPayment is the pull side of reconciliation: poll the gateway once
// and apply the result. Owner only, like every other order endpoint.
func (ph *PaymentHandler) RefreshPayment(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	number, err := orderNumberParam(ctx)
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	settled, err := ph.service.RefreshPayment(ctx, userID, number)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, gin.H{"settled": settled})
}
