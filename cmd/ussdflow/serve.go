package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/akwaba/ussdflow"
	"github.com/akwaba/ussdflow/internal/logging"
	httpAdapter "github.com/akwaba/ussdflow/pkg/adapters/http"
	"github.com/akwaba/ussdflow/pkg/adapters/redis"
	"github.com/akwaba/ussdflow/pkg/ports"
)

// serveConfig is read from the environment (and an optional .env file).
// Graph-level behavior lives in the graph document's app section; this is
// deployment wiring only.
type serveConfig struct {
	Port          string        `env:"USSD_PORT" envDefault:"8080"`
	RedisAddr     string        `env:"USSD_REDIS_ADDR"`
	RedisPassword string        `env:"USSD_REDIS_PASSWORD"`
	RedisDB       int           `env:"USSD_REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"USSD_SESSION_TTL" envDefault:"0"`
	SMSEndpoint   string        `env:"USSD_SMS_ENDPOINT"`
	RemoteTimeout time.Duration `env:"USSD_REMOTE_TIMEOUT" envDefault:"30s"`
	LogLevel      string        `env:"USSD_LOG_LEVEL" envDefault:"info"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the carrier-facing HTTP server",
	Long:  `Starts the engine in server mode, answering carrier form POSTs with JSON envelopes. Sessions go to Redis when USSD_REDIS_ADDR is set, to process memory otherwise.`,
	Run: func(cmd *cobra.Command, args []string) {
		graphPath, _ := cmd.Flags().GetString("graph")

		// A missing .env file is fine; the environment may carry everything.
		_ = godotenv.Load()

		var cfg serveConfig
		if err := env.Parse(&cfg); err != nil {
			fmt.Printf("Invalid environment: %v\n", err)
			os.Exit(1)
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		var store ports.SessionStore
		if cfg.RedisAddr != "" {
			rs := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithTTL(cfg.SessionTTL))
			defer rs.Close()
			store = rs
			logger.Info("using redis session store", "addr", cfg.RedisAddr)
		}

		client := httpAdapter.NewClient(cfg.RemoteTimeout)

		opts := []ussdflow.Option{
			ussdflow.WithLogger(logger),
			ussdflow.WithRemoteSwitch(client),
		}
		if store != nil {
			opts = append(opts, ussdflow.WithStore(store))
		}
		if cfg.SMSEndpoint != "" {
			opts = append(opts, ussdflow.WithSMSGateway(httpAdapter.NewSMSGateway(cfg.SMSEndpoint, client)))
		}

		app, err := ussdflow.New(graphPath, opts...)
		if err != nil {
			fmt.Printf("Error initializing app: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: httpAdapter.NewHandler(app, logger),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting USSD server on %s\n", srv.Addr)
			fmt.Printf("Serving graph: %s\n", graphPath)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding turns a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("USSD server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
