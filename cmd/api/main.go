package main

import (
	"time"

	"serbburger/internal/config"
	"serbburger/internal/domain/model"
	"serbburger/internal/handler"
	"serbburger/internal/infra/cache"
	"serbburger/internal/infra/db"
	infraRepo "serbburger/internal/infra/repository"
	"serbburger/internal/logger"
	"serbburger/internal/payment"
	"serbburger/internal/server"
	"serbburger/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 管理セッションJWT
type adminTokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func (i *adminTokenIssuer) Issue(now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)

	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くてもよい（本番は環境変数のみ）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.GoEnv)

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Ingredient{},
		&model.Product{},
		&model.ProductIngredient{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		panic(err)
	}

	//Repository生成
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	ingredientRepo := infraRepo.NewIngredientGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	linkRepo := infraRepo.NewProductIngredientGormRepository(gormDB)
	tx := infraRepo.NewTxManagerGorm(gormDB)

	//メニューキャッシュ（REDIS_ADDR未設定なら素通し）
	var menuCache usecase.MenuCache = cache.NoopMenuCache{}
	if cfg.RedisAddr != "" {
		menuCache = cache.NewRedisMenuCache(cfg.RedisAddr, 60*time.Second)
		log.Info().Str("addr", cfg.RedisAddr).Msg("menu cache enabled")
	}

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	verifier := usecase.NewEnvPasswordVerifier(cfg.AdminPasswordHash, cfg.AdminPassword)
	issuer := &adminTokenIssuer{secret: []byte(cfg.JWTSecret), ttl: cfg.SessionTTL}
	gateway := payment.NewWataGateway(cfg.WataAPIURL, cfg.WataAPIKey, cfg.WataShopID, cfg.PublicBaseURL, log)

	//Usecase生成
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, menuCache, idGen)
	ingredientUC := usecase.NewIngredientUsecase(ingredientRepo, menuCache, idGen)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, linkRepo, tx, menuCache, idGen)
	linkUC := usecase.NewProductIngredientUsecase(linkRepo, productRepo, ingredientRepo, menuCache, idGen)
	menuUC := usecase.NewMenuUsecase(productRepo, linkRepo, menuCache)
	orderUC := usecase.NewOrderUsecase(tx, gateway, idGen)
	adminOrderUC := usecase.NewAdminOrderUsecase(tx)
	authUC := usecase.NewAuthUsecase(verifier, issuer, clock)
	webhookUC := usecase.NewWebhookUsecase(tx, cfg.WataAPIKey, log)

	//Handler生成
	cookieSecure := cfg.GoEnv != "dev"
	h := server.Handlers{
		Menu:              handler.NewMenuHandler(menuUC),
		Order:             handler.NewOrderHandler(orderUC),
		Webhook:           handler.NewWebhookHandler(webhookUC),
		Auth:              handler.NewAuthHandler(authUC, cookieSecure),
		Category:          handler.NewCategoryHandler(categoryUC),
		Ingredient:        handler.NewIngredientHandler(ingredientUC),
		Product:           handler.NewProductHandler(productUC),
		ProductIngredient: handler.NewProductIngredientHandler(linkUC),
		AdminOrder:        handler.NewAdminOrderHandler(adminOrderUC),
	}

	//Server起動
	e := server.New(cfg, log, h)
	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
