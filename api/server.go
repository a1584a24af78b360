package api

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/katatrina/plg-shop/internal/backend"
	"github.com/katatrina/plg-shop/internal/checkout"
	"github.com/katatrina/plg-shop/internal/event"
	"github.com/katatrina/plg-shop/internal/logistics"
	"github.com/katatrina/plg-shop/internal/picker"
	"github.com/katatrina/plg-shop/internal/selection"
	"github.com/katatrina/plg-shop/internal/token"
	"github.com/katatrina/plg-shop/internal/util"
	shopvalidator "github.com/katatrina/plg-shop/internal/validator"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	checkoutPath      = "/payment"
	storeCallbackPath = "/payment/store-callback"
	pickerPath        = "/payment/picker"

	logisticsCallbackPath = "/api/logistics/client-callback"
)

// ShopperBackend is the part of the backend the page header and order pages need.
type ShopperBackend interface {
	CountCartItems(ctx context.Context, creds backend.Credentials) (int64, error)
	FetchOrders(ctx context.Context, creds backend.Credentials, limit int) ([]backend.OrderSummary, error)
}

type Server struct {
	router            *gin.Engine
	templates         *template.Template
	config            *util.Config
	tokenMaker        token.Maker
	checkoutService   *checkout.Service
	storeChannel      *selection.Channel
	pickerController  *picker.Controller
	logisticsProvider logistics.Provider
	shopperBackend    ShopperBackend
	eventSender       event.EventSender
	eventPublisher    event.Publisher
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(config *util.Config, checkoutService *checkout.Service, storeChannel *selection.Channel, pickerController *picker.Controller, logisticsProvider logistics.Provider, shopperBackend ShopperBackend, eventSender event.EventSender, eventPublisher event.Publisher) (*Server, error) {
	// Create a new JWT token maker
	tokenMaker, err := token.NewJWTMaker(config.TokenSecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create token maker: %w", err)
	}
	log.Info().Msg("Token maker created successfully ✅")

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	// Đăng ký các tag kiểm tra dữ liệu riêng của cửa hàng cho gin binding
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err = shopvalidator.Register(v); err != nil {
			return nil, fmt.Errorf("failed to register validators: %w", err)
		}
	}

	server := &Server{
		templates:         templates,
		config:            config,
		tokenMaker:        tokenMaker,
		checkoutService:   checkoutService,
		storeChannel:      storeChannel,
		pickerController:  pickerController,
		logisticsProvider: logisticsProvider,
		shopperBackend:    shopperBackend,
		eventSender:       eventSender,
		eventPublisher:    eventPublisher,
	}

	server.setupRouter()
	return server, nil
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() *gin.Engine {
	gin.ForceConsoleColor()
	router := gin.Default()
	router.SetHTMLTemplate(server.templates)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(func(c *gin.Context) {
		// Trang thanh toán cần giữ window.opener của popup chọn cửa hàng.
		c.Header("Cross-Origin-Opener-Policy", "same-origin-allow-popups")
		c.Header("Cross-Origin-Embedder-Policy", "unsafe-none")
		c.Next()
	})

	secureCookies := strings.HasPrefix(server.config.PublicBaseURL, "https://")
	scoped := router.Group("", checkoutScopeMiddleware(secureCookies))

	paymentGroup := scoped.Group(checkoutPath)
	{
		paymentGroup.GET("/picker", server.openStorePicker)
		paymentGroup.GET("/store-callback", server.receiveStoreCallback)
		paymentGroup.GET("/store", server.getSelectedStore)
		paymentGroup.POST("/store/focus", server.focusCheckout)
		paymentGroup.GET("/store/events", server.streamStoreEvents)

		pageGroup := paymentGroup.Group("", pageAuthMiddleware(server.tokenMaker))
		pageGroup.GET("", server.showCheckout)
		pageGroup.POST("/shipping", server.selectShippingMethod)
		pageGroup.POST("/address", server.setShippingAddress)
		pageGroup.POST("/checkout", server.submitCheckout)
	}

	router.POST(logisticsCallbackPath, server.bridgeLogisticsCallback)

	// Mọi method khác trên một route đã có (kể cả HEAD, OPTIONS) trả về 405 thay vì 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(rejectMethod)

	orderGroup := router.Group("/orders", authMiddleware(server.tokenMaker))
	{
		orderGroup.GET("", server.listOrders)
		orderGroup.POST("/waybill", server.printWaybill)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server.router = router
	return router
}

// Handler exposes the router, e.g. to serve it on an ngrok tunnel.
func (server *Server) Handler() http.Handler {
	return server.router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}
