package payment

import (
	"context"
	"errors"

	"serbburger/internal/domain/model"
)

// 決済結果。cardはホスト型チェックアウトのURLを持つ。
type Result struct {
	TransactionID string
	CheckoutURL   string
}

// 決済ゲートウェイが注文を断った（ユーザー向けメッセージ付き）。
type DeclinedError struct {
	Message string
}

func (e *DeclinedError) Error() string {
	return e.Message
}

func AsDeclined(err error) (*DeclinedError, bool) {
	var de *DeclinedError
	ok := errors.As(err, &de)
	return de, ok
}

// ゲートウェイへの通信自体に失敗した
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

type Gateway interface {
	Process(ctx context.Context, amount int64, method model.PaymentMethod) (Result, error)
}
