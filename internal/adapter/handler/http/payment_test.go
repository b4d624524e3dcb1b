package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/port"
	"github.com/pequenoleitor/ordercore/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newPaymentRouter(t *testing.T, svc *mock.MockService, userID uint64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ph, err := NewPaymentHandler(svc, zap.NewNop())
	assert.NoError(t, err)

	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(userPayloadKey, &port.TokenPayload{UserID: userID})
	})
	router.POST("/api/orders/:number/payment/refresh", ph.RefreshPayment)
	return router
}

func refreshPayment(router *gin.Engine, number string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders/"+number+"/payment/refresh", nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestPaymentHandler_RefreshPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("owner gets the settlement state", func(t *testing.T) {
		svc := mock.NewMockService(mockCtrl)
		svc.EXPECT().RefreshPayment(gomock.Any(), uint64(1), int64(125)).Return(true, nil)

		router := newPaymentRouter(t, svc, 1)
		rec := refreshPayment(router, "125")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"settled": true}`, rec.Body.String())
	})

	t.Run("another user's order is forbidden", func(t *testing.T) {
		svc := mock.NewMockService(mockCtrl)
		svc.EXPECT().RefreshPayment(gomock.Any(), uint64(2), int64(125)).
			Return(false, domain.ErrForbidden)

		router := newPaymentRouter(t, svc, 2)
		rec := refreshPayment(router, "125")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("malformed order number", func(t *testing.T) {
		svc := mock.NewMockService(mockCtrl)

		router := newPaymentRouter(t, svc, 1)
		rec := refreshPayment(router, "abc")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
