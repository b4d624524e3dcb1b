package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/govalues/decimal"
	"github.com/pequenoleitor/ordercore/internal/adapter/config"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pixStub struct {
	chargeStatus int
	qrStatus     int
}

func (s *pixStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/payments", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.chargeStatus)
		if s.chargeStatus == http.StatusOK {
			json.NewEncoder(w).Encode(map[string]string{"id": "pay_1", "status": "PENDING"})
		}
	})
	mux.HandleFunc("/payments/pay_1/pixQrCode", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.qrStatus)
		if s.qrStatus == http.StatusOK {
			json.NewEncoder(w).Encode(map[string]string{
				"payload":      "00020126pix-copia-e-cola",
				"encodedImage": "data:image/png;base64,abc",
			})
		}
	})
	return mux
}

func newPIXTestClient(t *testing.T, stub *pixStub) (*PIXClient, func()) {
	t.Helper()
	srv := httptest.NewServer(stub.handler())

	client, err := NewPIXClient(&config.Gateway{PIXBaseURL: srv.URL, TimeoutSeconds: 2}, zap.NewNop())
	assert.NoError(t, err)
	return client, srv.Close
}

func TestPIXClient_CreateCharge(t *testing.T) {
	order := &domain.Order{Number: 125, Total: decimal.MustParse("100.81")}
	payer := domain.PayerInfo{Name: "Ana", Email: "ana@example.com", Document: "12345678900"}

	t.Run("charge with qr code", func(t *testing.T) {
		client, stop := newPIXTestClient(t, &pixStub{chargeStatus: http.StatusOK, qrStatus: http.StatusOK})
		defer stop()

		result, err := client.CreateCharge(context.Background(), order, payer)
		assert.NoError(t, err)
		assert.Equal(t, "pay_1", result.CorrelationID)
		assert.Equal(t, domain.ProviderStatus("PENDING"), result.ProviderStatus)
		assert.Equal(t, domain.PresentationPixQRCode, result.Presentation.Kind)
		assert.Equal(t, "00020126pix-copia-e-cola", result.Presentation.PixPayload)
	})

	t.Run("qr code failure does not lose the charge", func(t *testing.T) {
		client, stop := newPIXTestClient(t, &pixStub{chargeStatus: http.StatusOK, qrStatus: http.StatusInternalServerError})
		defer stop()

		// The provider already holds the charge at this point; the result
		// must come back so a local payment row gets written for it.
		result, err := client.CreateCharge(context.Background(), order, payer)
		assert.NoError(t, err)
		assert.Equal(t, "pay_1", result.CorrelationID)
		assert.Empty(t, result.Presentation.PixPayload)
	})

	t.Run("provider rejection", func(t *testing.T) {
		client, stop := newPIXTestClient(t, &pixStub{chargeStatus: http.StatusBadRequest})
		defer stop()

		result, err := client.CreateCharge(context.Background(), order, payer)
		assert.ErrorIs(t, err, domain.ErrGatewayRejected)
		assert.Nil(t, result)
	})

	t.Run("provider outage", func(t *testing.T) {
		client, stop := newPIXTestClient(t, &pixStub{chargeStatus: http.StatusBadGateway})
		defer stop()

		result, err := client.CreateCharge(context.Background(), order, payer)
		assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
		assert.Nil(t, result)
	})
}
