package usecase

import (
	"context"
	"net/http"

	"serbburger/internal/domain/model"
	"serbburger/internal/payment"
	repo "serbburger/internal/repository"

	"github.com/rs/zerolog"
)

type WebhookUsecase struct {
	tx      repo.TransactionManager
	wataKey string
	logger  zerolog.Logger
}

func NewWebhookUsecase(tx repo.TransactionManager, wataKey string, logger zerolog.Logger) *WebhookUsecase {
	return &WebhookUsecase{tx: tx, wataKey: wataKey, logger: logger}
}

type WataWebhookInput struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	OrderID       string `json:"order_id"`
	Amount        *int64 `json:"amount,omitempty"`
	Signature     string `json:"signature,omitempty"`
}

type WataWebhookOutput struct {
	Received bool `json:"received"`
}

// HandleWata はWATAの決済通知を処理する。
// キーが設定されていれば署名検証し、successなら入金待ちの注文を調理中へ進める。
func (u *WebhookUsecase) HandleWata(ctx context.Context, in WataWebhookInput) (WataWebhookOutput, error) {
	switch in.Status {
	case "success", "failed", "pending":
	default:
		return WataWebhookOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if in.TransactionID == "" || in.OrderID == "" {
		return WataWebhookOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}

	//偽の入金通知を防ぐ
	if u.wataKey != "" {
		if !payment.VerifySignature(u.wataKey, in.OrderID, in.Status, in.TransactionID, in.Signature) {
			return WataWebhookOutput{}, NewHTTPError(http.StatusForbidden, "Invalid signature")
		}
	}

	u.logger.Info().
		Str("order_id", in.OrderID).
		Str("transaction_id", in.TransactionID).
		Str("status", in.Status).
		Msg("WATA webhook received")

	if in.Status != "success" {
		return WataWebhookOutput{Received: true}, nil
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByTransactionID(ctx, in.TransactionID)
		if err == repo.ErrNotFound {
			// ゲートウェイ側の注文参照がこちらに無くても通知自体は受理する
			u.logger.Warn().Str("transaction_id", in.TransactionID).Msg("webhook for unknown transaction")
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Webhook Error")
		}

		//入金確認待ちだった注文だけ進める
		if o.Status == model.OrderStatusPending {
			if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusPreparing); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Webhook Error")
			}
		}
		return nil
	})
	if err != nil {
		return WataWebhookOutput{}, err
	}

	return WataWebhookOutput{Received: true}, nil
}
