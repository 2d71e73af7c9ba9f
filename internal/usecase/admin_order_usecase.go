package usecase

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"serbburger/internal/domain/model"
	repo "serbburger/internal/repository"
)

// スキャナが読むQRペイロードの接頭辞
const orderQRPrefix = "ORDER:"

type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

// 未完了の注文キュー（管理画面が5秒間隔でポーリングする）。
func (u *AdminOrderUsecase) ListActive(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListActive(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при получении заказов")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Ошибка при получении заказов")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outs, nil
}

type UpdateOrderStatusInput struct {
	OrderID string
	Status  string
}

func parseOrderStatus(raw string) (model.OrderStatus, bool) {
	switch strings.TrimSpace(raw) {
	case "pending":
		return model.OrderStatusPending, true
	case "preparing":
		return model.OrderStatusPreparing, true
	case "ready":
		return model.OrderStatusReady, true
	case "completed":
		return model.OrderStatusCompleted, true
	default:
		return "", false
	}
}

// UpdateStatus は任意の状態から任意の状態への遷移を許す（店頭運用の巻き戻し含む）。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, in UpdateOrderStatusInput) error {
	if strings.TrimSpace(in.OrderID) == "" {
		return NewHTTPError(http.StatusBadRequest, "Некорректный ID заказа")
	}
	status, ok := parseOrderStatus(in.Status)
	if !ok {
		return NewHTTPError(http.StatusBadRequest, "Некорректный статус заказа")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.Orders().UpdateStatus(ctx, in.OrderID, status)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Заказ не найден")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении заказа")
		}
		return nil
	})
}

type ScanOutput struct {
	Number int64  `json:"number"`
	Status string `json:"status"`
}

// CompleteByScan は "ORDER:<number>" を受けて注文をcompletedにする。
func (u *AdminOrderUsecase) CompleteByScan(ctx context.Context, code string) (ScanOutput, error) {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, orderQRPrefix) {
		return ScanOutput{}, NewHTTPError(http.StatusBadRequest, "Некорректный QR-код")
	}

	number, err := strconv.ParseInt(strings.TrimPrefix(code, orderQRPrefix), 10, 64)
	if err != nil || number <= 0 {
		return ScanOutput{}, NewHTTPError(http.StatusBadRequest, "Некорректный QR-код")
	}

	var out ScanOutput
	txErr := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByNumber(ctx, number)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Заказ не найден")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении заказа")
		}

		//スキャン完了は中間状態を飛ばしてよい
		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusCompleted); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "Заказ не найден")
			}
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при обновлении заказа")
		}

		out = ScanOutput{Number: o.Number, Status: string(model.OrderStatusCompleted)}
		return nil
	})
	if txErr != nil {
		return ScanOutput{}, txErr
	}
	return out, nil
}
