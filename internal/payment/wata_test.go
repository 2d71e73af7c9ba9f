package payment_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"serbburger/internal/domain/model"
	"serbburger/internal/payment"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWataGateway_CashWithinLimit(t *testing.T) {
	g := payment.NewWataGateway("", "", "", "", zerolog.Nop())

	res, err := g.Process(context.Background(), 500, model.PaymentMethodCash)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.TransactionID, "cash-"))
	assert.Empty(t, res.CheckoutURL)
}

func TestWataGateway_CashOverLimitDeclined(t *testing.T) {
	g := payment.NewWataGateway("", "", "", "", zerolog.Nop())

	_, err := g.Process(context.Background(), 501, model.PaymentMethodCash)
	de, ok := payment.AsDeclined(err)
	if assert.True(t, ok) {
		assert.Equal(t, "Оплата наличными доступна только для заказов до 500 ₽", de.Message)
	}
}

// 認証情報が無ければモック決済にフォールバック
func TestWataGateway_CardWithoutCredsUsesMock(t *testing.T) {
	g := payment.NewWataGateway("https://api.watapay.io/v1", "", "", "", zerolog.Nop())

	res, err := g.Process(context.Background(), 840, model.PaymentMethodCard)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.TransactionID, "wata-mock-"))
	assert.Equal(t, "#mock-payment", res.CheckoutURL)
}

func TestWataGateway_CardCreatesHostedCheckout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "shop-1", body["shop_id"])
		assert.Equal(t, float64(840), body["amount"])
		assert.Equal(t, "RUB", body["currency"])
		assert.Equal(t, "https://burger.example/order/success", body["return_url"])
		assert.Equal(t, "https://burger.example/webhooks/wata", body["notification_url"])

		json.NewEncoder(w).Encode(map[string]string{
			"id":           "wata-42",
			"checkout_url": "https://pay.watapay.io/w/42",
		})
	}))
	defer srv.Close()

	g := payment.NewWataGateway(srv.URL, "key-1", "shop-1", "https://burger.example", zerolog.Nop())

	res, err := g.Process(context.Background(), 840, model.PaymentMethodCard)
	assert.NoError(t, err)
	assert.Equal(t, "wata-42", res.TransactionID)
	assert.Equal(t, "https://pay.watapay.io/w/42", res.CheckoutURL)
}

func TestWataGateway_CardRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := payment.NewWataGateway(srv.URL, "key-1", "shop-1", "https://burger.example", zerolog.Nop())

	_, err := g.Process(context.Background(), 840, model.PaymentMethodCard)
	assert.ErrorIs(t, err, payment.ErrGatewayUnavailable)
}

func TestWataGateway_CardMissingCheckoutURLDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "wata-42"})
	}))
	defer srv.Close()

	g := payment.NewWataGateway(srv.URL, "key-1", "shop-1", "https://burger.example", zerolog.Nop())

	_, err := g.Process(context.Background(), 840, model.PaymentMethodCard)
	de, ok := payment.AsDeclined(err)
	if assert.True(t, ok) {
		assert.Equal(t, "Не удалось инициировать платеж через WATA", de.Message)
	}
}

func TestVerifySignature(t *testing.T) {
	mac := hmac.New(sha256.New, []byte("secret-key"))
	mac.Write([]byte("order-1" + "success" + "wata-1"))
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, payment.VerifySignature("secret-key", "order-1", "success", "wata-1", valid))
	assert.False(t, payment.VerifySignature("secret-key", "order-1", "success", "wata-1", "tampered"))
	assert.False(t, payment.VerifySignature("other-key", "order-1", "success", "wata-1", valid))
	assert.False(t, payment.VerifySignature("secret-key", "order-1", "failed", "wata-1", valid))
}
