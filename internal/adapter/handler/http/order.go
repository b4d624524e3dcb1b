package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type OrderItemRequest struct {
	Name            string          `json:"name" binding:"required"`
	UnitPrice       string          `json:"unitPrice" binding:"required"`
	Quantity        int             `json:"quantity" binding:"required"`
	Digital         bool            `json:"digital"`
	Personalization json.RawMessage `json:"personalization"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required"`
	CouponCode      string             `json:"couponCode"`
	AffiliateCode   string             `json:"affiliateCode"`
	ShippingAddress string             `json:"shippingAddress"`
	CustomerNote    string             `json:"customerNote"`
}

type OrderItemResp struct {
	Name         string          `json:"name"`
	UnitPrice    string          `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	Subtotal     string          `json:"subtotal"`
	Digital      bool            `json:"digital"`
	DeliveryLink string          `json:"deliveryLink,omitempty"`
	Personalized json.RawMessage `json:"personalization,omitempty"`
}

type HistoryResp struct {
	From      string    `json:"from,omitempty"`
	To        string    `json:"to"`
	Note      string    `json:"note,omitempty"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"createdAt"`
}

type OrderResp struct {
	Number        string          `json:"number"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	Subtotal      string          `json:"subtotal"`
	Discount      string          `json:"discount"`
	Shipping      string          `json:"shipping"`
	Total         string          `json:"total"`
	CouponCode    string          `json:"couponCode,omitempty"`
	AffiliateCode string          `json:"affiliateCode,omitempty"`
	TrackingCode  string          `json:"trackingCode,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	Items         []OrderItemResp `json:"items,omitempty"`
	History       []HistoryResp   `json:"history,omitempty"`
}

func newOrderResp(o *domain.Order) OrderResp {
	resp := OrderResp{
		Number:        o.DisplayNumber(),
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Subtotal:      o.Subtotal.String(),
		Discount:      o.Discount.String(),
		Shipping:      o.Shipping.String(),
		Total:         o.Total.String(),
		CouponCode:    o.CouponCode,
		AffiliateCode: o.AffiliateCode,
		TrackingCode:  o.TrackingCode,
		CreatedAt:     o.CreatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResp{
			Name:         item.Name,
			UnitPrice:    item.UnitPrice.String(),
			Quantity:     item.Quantity,
			Subtotal:     item.Subtotal.String(),
			Digital:      item.Digital,
			DeliveryLink: item.DeliveryLink,
			Personalized: item.Personalization,
		})
	}
	return resp
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	req := CreateOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	input := port.NewOrderInput{
		UserID:          userID,
		CouponCode:      req.CouponCode,
		AffiliateCode:   req.AffiliateCode,
		ShippingAddress: req.ShippingAddress,
		CustomerNote:    req.CustomerNote,
	}
	for _, item := range req.Items {
		price, err := decimal.Parse(item.UnitPrice)
		if err != nil {
			oh.handleValidationError(ctx, domain.ErrBadRequest)
			return
		}
		input.Lines = append(input.Lines, domain.CartLine{
			Name:            item.Name,
			UnitPrice:       price,
			Quantity:        item.Quantity,
			Digital:         item.Digital,
			Personalization: item.Personalization,
		})
	}

	order, err := oh.service.CreateOrder(ctx, input)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, newOrderResp(order), http.StatusCreated)
}

func (oh *OrderHandler) ListOrdersByUser(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := oh.service.GetOrdersByUser(ctx, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]OrderResp, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResp(o))
	}

	oh.handleSuccess(ctx, result)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	number, err := orderNumberParam(ctx)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, history, err := oh.service.GetOrder(ctx, userID, number)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	resp := newOrderResp(order)
	for _, entry := range history {
		resp.History = append(resp.History, HistoryResp{
			From:      string(entry.FromStatus),
			To:        string(entry.ToStatus),
			Note:      entry.Note,
			Actor:     entry.Actor,
			CreatedAt: entry.CreatedAt,
		})
	}

	oh.handleSuccess(ctx, resp)
}

// orderNumberParam accepts both the plain sequence number and the
// storefront's PED-000123 rendering.
func orderNumberParam(ctx *gin.Context) (int64, error) {
	raw := ctx.Param("number")
	raw = strings.TrimPrefix(raw, "PED-")
	return strconv.ParseInt(raw, 10, 64)
}
