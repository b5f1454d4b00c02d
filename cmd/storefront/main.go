package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/pizzeria-storefront/docs"
	"github.com/MikeMC777/pizzeria-storefront/internal/cart"
	"github.com/MikeMC777/pizzeria-storefront/internal/catalog"
	"github.com/MikeMC777/pizzeria-storefront/internal/config"
	"github.com/MikeMC777/pizzeria-storefront/internal/courier"
	"github.com/MikeMC777/pizzeria-storefront/internal/httpx"
	"github.com/MikeMC777/pizzeria-storefront/internal/notify"
	"github.com/MikeMC777/pizzeria-storefront/internal/order"
)

// @title        Pizzeria Storefront API
// @version      1.0
// @description  Online ordering backend for a single restaurant: menu, carts, delivery orders, fulfillment pipeline and daily sales.
// @BasePath     /
func main() {
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Printf("[main] unknown time zone %q, using UTC: %v", cfg.TimeZone, err)
		loc = time.UTC
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[main] postgres: %v", err)
	}
	defer pool.Close()

	catalogRepo := catalog.NewPGRepo(pool)
	orderRepo := order.NewPGRepo(pool)
	courierRepo := courier.NewPGRepo(pool)
	svc := order.NewService(orderRepo, catalogRepo)
	carts := cart.NewRedisStore(cfg.RedisAddr, time.Duration(cfg.CartTTLHours)*time.Hour)

	var notifier notify.Notifier = notify.Nop{}
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramAdminChat)
		if err != nil {
			log.Printf("[main] telegram disabled: %v", err)
		} else {
			notifier = tg
		}
	}

	// Safe on every boot: seeding is keyed on stable IDs.
	if err := catalog.EnsureSeeded(ctx, catalogRepo); err != nil {
		log.Printf("[main] menu seed: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/menu", listMenuHandler(catalogRepo))
	r.GET("/menu/category/:category", listMenuByCategoryHandler(catalogRepo))
	r.POST("/initialize-menu", initializeMenuHandler(catalogRepo))
	r.GET("/zones", listZonesHandler())

	r.POST("/orders", createOrderHandler(svc, notifier))
	r.GET("/orders", listOrdersHandler(svc))
	r.GET("/orders/:id", getOrderHandler(svc))
	r.GET("/orders/:id/actions", orderActionsHandler(svc))
	r.PUT("/orders/:id/status", updateOrderStatusHandler(svc, notifier))

	r.GET("/analytics/today", analyticsTodayHandler(orderRepo, loc))

	r.GET("/cart", getCartHandler(carts, catalogRepo))
	r.POST("/cart/items", addCartItemHandler(carts, catalogRepo))
	r.PUT("/cart/items/:id", updateCartItemHandler(carts, catalogRepo))
	r.DELETE("/cart/items/:id", removeCartItemHandler(carts, catalogRepo))
	r.DELETE("/cart", clearCartHandler(carts))

	r.POST("/couriers", createCourierHandler(courierRepo))
	r.GET("/couriers", listCouriersHandler(courierRepo))
	r.PUT("/couriers/:id/availability", setCourierAvailabilityHandler(courierRepo))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("storefront listening on %s", cfg.HTTPAddr)
	log.Fatal(r.Run(cfg.HTTPAddr))
}
