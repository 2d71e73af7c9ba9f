package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"serbburger/internal/domain/model"
	"serbburger/internal/payment"
	repo "serbburger/internal/repository"
)

type OrderUsecase struct {
	tx      repo.TransactionManager
	gateway payment.Gateway
	idGen   IDGenerator
}

func NewOrderUsecase(tx repo.TransactionManager, gateway payment.Gateway, idGen IDGenerator) *OrderUsecase {
	return &OrderUsecase{tx: tx, gateway: gateway, idGen: idGen}
}

type SelectedIngredientInput struct {
	ID    string `json:"id"`
	Price int64  `json:"price"`
}

type OrderItemInput struct {
	ProductID           string                    `json:"productId"`
	Quantity            int64                     `json:"quantity"`
	SelectedIngredients []SelectedIngredientInput `json:"selectedIngredients"`
	TotalPrice          int64                     `json:"totalPrice"`
}

type PlaceOrderInput struct {
	Items         []OrderItemInput `json:"items"`
	TotalAmount   int64            `json:"totalAmount"`
	PaymentMethod string           `json:"paymentMethod"`
}

type PlaceOrderOutput struct {
	Success     bool   `json:"success"`
	OrderID     int64  `json:"orderId"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
	Message     string `json:"message"`
}

// 注文時点のスナップショット形
type ingredientSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// PlaceOrder はカートを検証し、決済してから注文を永続化する。
// 金額はクライアント申告を信用せず、カタログから再計算して照合する。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if len(in.Items) == 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Некорректные данные заказа")
	}
	if in.TotalAmount < 1 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Некорректные данные заказа")
	}

	var method model.PaymentMethod
	switch in.PaymentMethod {
	case "card":
		method = model.PaymentMethodCard
	case "cash":
		method = model.PaymentMethodCash
	default:
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Некорректные данные заказа")
	}

	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "Некорректные данные заказа")
		}
	}

	var out PlaceOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カタログ価格で再計算
		var total int64
		orderItems := make([]model.OrderItem, 0, len(in.Items))

		for _, item := range in.Items {
			p, err := r.Products().FindByID(ctx, item.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "Продукт не найден")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Ошибка сервера при создании заказа")
			}

			ids := make([]string, 0, len(item.SelectedIngredients))
			for _, sel := range item.SelectedIngredients {
				ids = append(ids, sel.ID)
			}

			ings, err := r.Ingredients().FindByIDs(ctx, ids)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Ошибка сервера при создании заказа")
			}
			byID := make(map[string]model.Ingredient, len(ings))
			for _, ing := range ings {
				byID[ing.ID] = ing
			}

			//申告された各選択をカタログ行に解決する（重複選択は重複課金）
			selection := make([]model.Ingredient, 0, len(item.SelectedIngredients))
			snapshots := make([]ingredientSnapshot, 0, len(item.SelectedIngredients))
			for _, sel := range item.SelectedIngredients {
				ing, ok := byID[sel.ID]
				if !ok {
					return NewHTTPError(http.StatusBadRequest, "Ингредиент не найден")
				}
				selection = append(selection, ing)
				snapshots = append(snapshots, ingredientSnapshot{ID: ing.ID, Name: ing.Name, Price: ing.Price})
			}

			line := LineTotal(p, selection, item.Quantity)
			total += line

			snapJSON, err := json.Marshal(snapshots)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Ошибка сервера при создании заказа")
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:           p.ID,
				ProductName:         p.Name,
				Quantity:            item.Quantity,
				Price:               line,
				SelectedIngredients: string(snapJSON),
				CreatedAt:           time.Now(),
			})
		}

		if total != in.TotalAmount {
			return NewHTTPError(http.StatusBadRequest, "Сумма заказа не совпадает с актуальными ценами меню")
		}

		//決済してから注文を書く。決済が断られたら何も残らない。
		res, err := u.gateway.Process(ctx, total, method)
		if err != nil {
			if de, ok := payment.AsDeclined(err); ok {
				return NewHTTPError(http.StatusBadRequest, de.Message)
			}
			return NewHTTPError(http.StatusBadGateway, "Ошибка при обращении к платежному шлюзу")
		}

		now := time.Now()
		created, err := r.Orders().Create(ctx, model.Order{
			ID:            u.idGen.NewID(),
			TotalAmount:   total,
			PaymentMethod: method,
			Status:        model.OrderStatusPreparing,
			TransactionID: res.TransactionID,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Ошибка сервера при создании заказа")
		}

		if err := r.OrderItems().CreateBulk(ctx, created.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Ошибка сервера при создании заказа")
		}

		out = PlaceOrderOutput{
			Success:     true,
			OrderID:     created.Number,
			CheckoutURL: res.CheckoutURL,
			Message:     "Заказ успешно создан",
		}
		return nil
	})
	if err != nil {
		return PlaceOrderOutput{}, err
	}

	return out, nil
}

type OrderItemOutput struct {
	ProductName         string               `json:"product_name"`
	Quantity            int64                `json:"quantity"`
	TotalPrice          int64                `json:"total_price"`
	SelectedIngredients []ingredientSnapshot `json:"selected_ingredients"`
}

type OrderOutput struct {
	ID            string            `json:"id"`
	Number        int64             `json:"number"`
	TotalAmount   int64             `json:"total_amount"`
	PaymentMethod string            `json:"payment_method"`
	Status        string            `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// GetByNumber は注文状況ページ用の公開照会。
func (u *OrderUsecase) GetByNumber(ctx context.Context, number int64) (OrderOutput, error) {
	if number <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "Некорректный номер заказа")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByNumber(ctx, number)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Заказ не найден")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при получении заказа")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "Ошибка при получении заказа")
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		var snaps []ingredientSnapshot
		if err := json.Unmarshal([]byte(it.SelectedIngredients), &snaps); err != nil {
			snaps = []ingredientSnapshot{}
		}
		outItems = append(outItems, OrderItemOutput{
			ProductName:         it.ProductName,
			Quantity:            it.Quantity,
			TotalPrice:          it.Price,
			SelectedIngredients: snaps,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		Number:        o.Number,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: string(o.PaymentMethod),
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
