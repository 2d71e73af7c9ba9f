package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"serbburger/internal/domain/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// 現金は500₽までしか受けない
const cashLimit int64 = 500

// WATA Pay連携。cashはローカルで決済し、cardはホスト型チェックアウトへ渡す。
type WataGateway struct {
	apiURL string
	apiKey string
	shopID string
	// return_url / notification_url の組み立て元
	publicBaseURL string

	client *http.Client
	logger zerolog.Logger
}

func NewWataGateway(apiURL, apiKey, shopID, publicBaseURL string, logger zerolog.Logger) *WataGateway {
	return &WataGateway{
		apiURL:        apiURL,
		apiKey:        apiKey,
		shopID:        shopID,
		publicBaseURL: publicBaseURL,
		client:        &http.Client{Timeout: 10 * time.Second},
		logger:        logger,
	}
}

type createPaymentRequest struct {
	ShopID          string `json:"shop_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Description     string `json:"description"`
	ReturnURL       string `json:"return_url"`
	NotificationURL string `json:"notification_url"`
}

type createPaymentResponse struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
}

func (g *WataGateway) Process(ctx context.Context, amount int64, method model.PaymentMethod) (Result, error) {
	if method == model.PaymentMethodCash {
		if amount > cashLimit {
			return Result{}, &DeclinedError{Message: "Оплата наличными доступна только для заказов до 500 ₽"}
		}
		return Result{TransactionID: "cash-" + uuid.NewString()}, nil
	}

	// 認証情報が無ければモック決済（本番では使わない）
	if g.apiKey == "" || g.shopID == "" {
		g.logger.Warn().Msg("WATA API key or shop id is missing, using mock payment")
		return Result{
			TransactionID: "wata-mock-" + uuid.NewString(),
			CheckoutURL:   "#mock-payment",
		}, nil
	}

	body, err := json.Marshal(createPaymentRequest{
		ShopID:          g.shopID,
		Amount:          amount,
		Currency:        "RUB",
		Description:     "Заказ в Serb Burger",
		ReturnURL:       g.publicBaseURL + "/order/success",
		NotificationURL: g.publicBaseURL + "/webhooks/wata",
	})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error().Err(err).Msg("WATA payment request failed")
		return Result{}, ErrGatewayUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.logger.Error().Int("status", resp.StatusCode).Msg("WATA payment request rejected")
		return Result{}, ErrGatewayUnavailable
	}

	var out createPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		g.logger.Error().Err(err).Msg("WATA payment response decode failed")
		return Result{}, ErrGatewayUnavailable
	}

	if out.CheckoutURL == "" {
		return Result{}, &DeclinedError{Message: "Не удалось инициировать платеж через WATA"}
	}

	return Result{TransactionID: out.ID, CheckoutURL: out.CheckoutURL}, nil
}

// VerifySignature はWATAのWebhook署名を検証する。
// HMAC-SHA256(order_id + status + transaction_id) のhexと比較する。
func VerifySignature(apiKey, orderID, status, transactionID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(apiKey))
	fmt.Fprint(mac, orderID, status, transactionID)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
