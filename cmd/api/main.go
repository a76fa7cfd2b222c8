package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "peerlend-backend/internal/adapter/http"
	appmw "peerlend-backend/internal/adapter/middleware"
	"peerlend-backend/internal/adapter/repository/mysql"
	"peerlend-backend/internal/config"
	loanDomain "peerlend-backend/internal/domain/loan"
	offerDomain "peerlend-backend/internal/domain/offer"
	profileDomain "peerlend-backend/internal/domain/profile"
	"peerlend-backend/internal/infrastructure/cache"
	"peerlend-backend/internal/infrastructure/db"
	"peerlend-backend/internal/infrastructure/storage"
	"peerlend-backend/internal/logger"
	authUC "peerlend-backend/internal/usecase/auth"
	"peerlend-backend/internal/usecase/evidence"
	loanUC "peerlend-backend/internal/usecase/loan"
	offerUC "peerlend-backend/internal/usecase/offer"
)

func main() {
	_ = godotenv.Load()
	logger.Init()
	defer func() { _ = logger.Log.Sync() }()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		logger.Log.Fatal("mysql connect failed", zap.Error(err))
	}
	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := gdb.AutoMigrate(&profileDomain.Profile{}, &offerDomain.Offer{}, &loanDomain.Loan{}); err != nil {
			logger.Log.Fatal("auto-migrate failed", zap.Error(err))
		}
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Log.Fatal("redis connect failed", zap.Error(err))
	}

	store := storage.New(storage.Options{
		Endpoint:   cfg.StorageEndpoint,
		PublicBase: cfg.StoragePublicBase,
		Bucket:     cfg.StorageBucket,
		Token:      cfg.StorageToken,
	})

	offerRepo := mysql.NewOfferRepository(gdb)
	loanRepo := mysql.NewLoanRepository(gdb)
	profileRepo := mysql.NewProfileRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	listing := cache.NewListing(rdb, time.Duration(cfg.ListingTTLSecs)*time.Second)
	denylist := cache.NewDenylist(rdb)
	capture := evidence.NewCapture(store)

	secret := []byte(cfg.JWTSecret)
	sessionTTL := time.Duration(cfg.SessionTTLH) * time.Hour

	offers := offerUC.NewUsecase(offerRepo, loanRepo, listing)
	loans := loanUC.NewUsecase(loanRepo, uow, capture, listing)
	auth := authUC.NewUsecase(profileRepo, denylist, secret, sessionTTL)

	h := httpadp.NewHandler()
	oh := httpadp.NewOfferHandler(offers)
	lh := httpadp.NewLoanHandler(loans)
	ah := httpadp.NewAuthHandler(auth)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	sessionMW := appmw.Session(secret, denylist)
	idemp := appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)
	e.POST("/auth/signup", ah.SignUp)
	e.POST("/auth/signin", ah.SignIn)
	e.POST("/auth/signout", ah.SignOut)

	api := e.Group("", sessionMW)
	api.GET("/offers", oh.Marketplace)
	api.POST("/offers", oh.CreateOffer, idemp)
	api.GET("/offers/mine", oh.MyOffers)
	api.POST("/offers/:offer_id/borrow", lh.Borrow, idemp)
	api.GET("/loans/borrowed", lh.BorrowedLoans)
	api.GET("/loans/lent", lh.LentLoans)
	api.POST("/loans/:loan_id/payment", lh.SubmitPayment, idemp)
	api.POST("/loans/:loan_id/confirm", lh.ConfirmPayment, idemp)

	addr := ":" + cfg.AppPort
	logger.Log.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}
