package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/katatrina/plg-shop/api"
	"github.com/katatrina/plg-shop/internal/backend"
	"github.com/katatrina/plg-shop/internal/checkout"
	"github.com/katatrina/plg-shop/internal/event"
	"github.com/katatrina/plg-shop/internal/logistics"
	"github.com/katatrina/plg-shop/internal/payment"
	"github.com/katatrina/plg-shop/internal/picker"
	"github.com/katatrina/plg-shop/internal/selection"
	"github.com/katatrina/plg-shop/internal/storage"
	"github.com/katatrina/plg-shop/internal/util"
	"github.com/katatrina/plg-shop/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.ngrok.com/ngrok"
	ngrokconfig "golang.ngrok.com/ngrok/config"

	_ "github.com/katatrina/plg-shop/docs"
)

const (
	backendTimeout      = 20 * time.Second
	pickerSweepInterval = time.Minute
	shutdownGracePeriod = 10 * time.Second
)

//	@title			PLG Shop Checkout API
//	@version		1.0.0
//	@description	Checkout pages, convenience-store picker and logistics callbacks of the PLG sports shop

//	@host		localhost:8080
//	@BasePath	/
//	@schemes	http https

//	@securityDefinitions.apikey	accessToken
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}

	log.Info().Msg("configurations loaded successfully ✅")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisDb := redis.NewClient(&redis.Options{
		Addr:     config.RedisServerAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	if err = redisDb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis 😣")
	}
	log.Info().Msg("connected to redis ✅")

	kvStore := storage.NewRedisStore(redisDb)

	// Khởi tạo SSE hub và relay qua redis pub/sub giữa các instance
	eventHub := event.NewSSEServer()
	go eventHub.Run()

	relay := event.NewRedisRelay(redisDb, eventHub)
	relayReady := make(chan struct{})
	go func() {
		if err := relay.Run(ctx, relayReady); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("event relay stopped 😣")
		}
	}()
	select {
	case <-relayReady:
	case <-ctx.Done():
		return
	}

	storeChannel := selection.NewChannel(kvStore, relay, eventHub)

	backendClient := backend.NewClient(config.APIBaseURL, backendTimeout)
	defer backendClient.Close()
	log.Info().Msg("Backend client created successfully ✅")

	redisOpt := asynq.RedisClientOpt{
		Addr: config.RedisServerAddress,
	}
	taskDistributor := worker.NewTaskDistributor(redisOpt, config.SelectionDiscardDelay)
	defer taskDistributor.Close()

	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, storeChannel)
	if err = taskProcessor.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start task processor 😣")
	}
	defer taskProcessor.Shutdown()
	log.Info().Msg("task processor started ✅")

	logisticsProvider := logistics.NewBackendProvider(backendClient)
	checkoutService := checkout.NewService(
		backendClient,
		storeChannel,
		payment.NewECPayGateway(backendClient),
		kvStore,
		config.DraftTTL,
		taskDistributor,
	)

	tokenIssuer := picker.NewTokenIssuer(config.SelectionTokenSecret, kvStore, config.PickerSessionTTL)
	pickerController := picker.NewController(logisticsProvider, tokenIssuer, config.PickerTokenTimeout)

	sweeper, err := picker.NewSweeper(pickerController, config.PickerSessionTTL, pickerSweepInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create picker sweeper 😣")
	}
	if err = sweeper.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start picker sweeper 😣")
	}
	defer sweeper.Stop()
	log.Info().Msg("picker sweeper started ✅")

	server, err := api.NewServer(&config, checkoutService, storeChannel, pickerController, logisticsProvider, backendClient, eventHub, relay)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server 😣")
	}

	runHTTPServer(ctx, config, server)
}

// runHTTPServer serves on a public ngrok endpoint when NGROK_AUTHTOKEN is set,
// so the logistics provider can reach the callback bridge from a dev machine.
func runHTTPServer(ctx context.Context, config util.Config, server *api.Server) {
	var listener net.Listener
	var err error

	if config.NgrokAuthToken != "" {
		tunnel, err := ngrok.Listen(ctx, ngrokconfig.HTTPEndpoint(), ngrok.WithAuthtoken(config.NgrokAuthToken))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open ngrok tunnel 😣")
		}
		log.Info().Str("url", tunnel.URL()).Msg("ngrok tunnel established ✅")
		listener = tunnel
	} else {
		listener, err = net.Listen("tcp", config.HTTPServerAddress)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to listen on HTTP address 😣")
		}
	}

	httpServer := &http.Server{
		Handler: server.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shut down HTTP server")
		}
	}()

	log.Info().Str("address", listener.Addr().String()).Msg("HTTP server started ✅")
	if err = httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("failed to start HTTP server 😣")
	}
}
