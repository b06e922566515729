package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/database"
	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	hotelRepo := repository.NewHotelRepo(db)
	roomTypeRepo := repository.NewRoomTypeRepo(db)
	serviceRepo := repository.NewServiceRepo(db)
	ruleRepo := repository.NewCancellationRuleRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := handler.NewPublicHandler(hotelRepo, roomTypeRepo, serviceRepo)
	pricingHandler := handler.NewPricingHandler(hotelRepo, roomTypeRepo, serviceRepo, ruleRepo)
	ownerHandler := handler.NewOwnerHandler(hotelRepo, roomTypeRepo, serviceRepo, ruleRepo, bookingRepo)
	customerHandler := handler.NewCustomerHandler(bookingRepo, hotelRepo, roomTypeRepo, serviceRepo, ruleRepo, userRepo)

	e := echo.New()
	e.HideBanner = true

	// Public routes get the Redis-backed middlewares when Redis is
	// reachable: token-bucket rate limiting first, response caching
	// second, so cache hits still consume a token.
	var publicMW []echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		rlCfg := config.LoadRateLimitConfig()
		if rlCfg.Enabled {
			publicMW = append(publicMW, middleware.NewTokenBucket(rlCfg, rdb))
		}
		cacheCfg := config.LoadCacheConfig()
		if cacheCfg.Enabled {
			publicMW = append(publicMW, middleware.NewRedisCache(cacheCfg, rdb))
		}
	} else {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, pricingHandler, publicMW...)
	router.RegisterOwner(e, ownerHandler, cfg.JWTSecret)
	router.RegisterCustomer(e, customerHandler, cfg.JWTSecret)

	// Background consumer turns booking events into notification log
	// lines. It runs its own reconnect loop for the broker's lifetime.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
