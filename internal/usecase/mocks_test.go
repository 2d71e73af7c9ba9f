package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"serbburger/internal/domain/model"
	"serbburger/internal/payment"
	repo "serbburger/internal/repository"
	"serbburger/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]repo.CategoryWithCount, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.CategoryWithCount)
	return rows, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id string) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) CountProducts(ctx context.Context, categoryID string) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

func (m *CategoryRepoMock) Update(ctx context.Context, c model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type IngredientRepoMock struct{ mock.Mock }

func (m *IngredientRepoMock) List(ctx context.Context) ([]repo.IngredientWithCount, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.IngredientWithCount)
	return rows, args.Error(1)
}

func (m *IngredientRepoMock) FindByID(ctx context.Context, id string) (model.Ingredient, error) {
	args := m.Called(ctx, id)
	i, _ := args.Get(0).(model.Ingredient)
	return i, args.Error(1)
}

func (m *IngredientRepoMock) FindByIDs(ctx context.Context, ids []string) ([]model.Ingredient, error) {
	args := m.Called(ctx, ids)
	rows, _ := args.Get(0).([]model.Ingredient)
	return rows, args.Error(1)
}

func (m *IngredientRepoMock) CountLinks(ctx context.Context, ingredientID string) (int64, error) {
	args := m.Called(ctx, ingredientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *IngredientRepoMock) Create(ctx context.Context, i model.Ingredient) (model.Ingredient, error) {
	args := m.Called(ctx, i)
	created, _ := args.Get(0).(model.Ingredient)
	return created, args.Error(1)
}

func (m *IngredientRepoMock) Update(ctx context.Context, i model.Ingredient) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *IngredientRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context) ([]repo.ProductWithCategory, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.ProductWithCategory)
	return rows, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) CountOrderItems(ctx context.Context, productID string) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type LinkRepoMock struct{ mock.Mock }

func (m *LinkRepoMock) ListByProductID(ctx context.Context, productID string) ([]model.ProductIngredient, error) {
	args := m.Called(ctx, productID)
	rows, _ := args.Get(0).([]model.ProductIngredient)
	return rows, args.Error(1)
}

func (m *LinkRepoMock) FindLink(ctx context.Context, productID string, ingredientID string) (model.ProductIngredient, error) {
	args := m.Called(ctx, productID, ingredientID)
	l, _ := args.Get(0).(model.ProductIngredient)
	return l, args.Error(1)
}

func (m *LinkRepoMock) Create(ctx context.Context, pi model.ProductIngredient) (model.ProductIngredient, error) {
	args := m.Called(ctx, pi)
	created, _ := args.Get(0).(model.ProductIngredient)
	return created, args.Error(1)
}

func (m *LinkRepoMock) Update(ctx context.Context, pi model.ProductIngredient) error {
	args := m.Called(ctx, pi)
	return args.Error(0)
}

func (m *LinkRepoMock) Delete(ctx context.Context, productID string, ingredientID string) error {
	args := m.Called(ctx, productID, ingredientID)
	return args.Error(0)
}

func (m *LinkRepoMock) DeleteByProductID(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, id string) (model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByNumber(ctx context.Context, number int64) (model.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByTransactionID(ctx context.Context, transactionID string) (model.Order, error) {
	args := m.Called(ctx, transactionID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListActive(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]model.Order)
	return rows, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, o model.Order) (model.Order, error) {
	args := m.Called(ctx, o)
	created, _ := args.Get(0).(model.Order)
	return created, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	rows, _ := args.Get(0).([]model.OrderItem)
	return rows, args.Error(1)
}

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) Process(ctx context.Context, amount int64, method model.PaymentMethod) (payment.Result, error) {
	args := m.Called(ctx, amount, method)
	res, _ := args.Get(0).(payment.Result)
	return res, args.Error(1)
}

// =====================
// Txスタブ（commit/rollbackはusecaseから見えないのでfnを直接呼ぶ）
// =====================

type txReposStub struct {
	categories  *CategoryRepoMock
	ingredients *IngredientRepoMock
	products    *ProductRepoMock
	links       *LinkRepoMock
	orders      *OrderRepoMock
	orderItems  *OrderItemRepoMock
}

func newTxReposStub() *txReposStub {
	return &txReposStub{
		categories:  new(CategoryRepoMock),
		ingredients: new(IngredientRepoMock),
		products:    new(ProductRepoMock),
		links:       new(LinkRepoMock),
		orders:      new(OrderRepoMock),
		orderItems:  new(OrderItemRepoMock),
	}
}

func (s *txReposStub) Categories() repo.CategoryRepository                 { return s.categories }
func (s *txReposStub) Ingredients() repo.IngredientRepository              { return s.ingredients }
func (s *txReposStub) Products() repo.ProductRepository                    { return s.products }
func (s *txReposStub) ProductIngredients() repo.ProductIngredientRepository { return s.links }
func (s *txReposStub) Orders() repo.OrderRepository                        { return s.orders }
func (s *txReposStub) OrderItems() repo.OrderItemRepository                { return s.orderItems }

type txManagerStub struct {
	repos *txReposStub
}

func newTxManagerStub() *txManagerStub {
	return &txManagerStub{repos: newTxReposStub()}
}

func (s *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s.repos)
}

// =====================
// 小物
// =====================

type menuCacheSpy struct {
	payload     []byte
	hit         bool
	sets        int
	invalidated int
}

func (c *menuCacheSpy) Get(ctx context.Context) ([]byte, bool, error) {
	return c.payload, c.hit, nil
}

func (c *menuCacheSpy) Set(ctx context.Context, payload []byte) error {
	c.sets++
	c.payload = payload
	return nil
}

func (c *menuCacheSpy) Invalidate(ctx context.Context) error {
	c.invalidated++
	return nil
}

type seqIDGen struct {
	n int
}

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.t
}

func assertHTTPStatus(t *testing.T, err error, status int) *usecase.HTTPError {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if !assert.True(t, ok, "expected HTTPError, got %v", err) {
		return nil
	}
	assert.Equal(t, status, he.Status)
	return he
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }
