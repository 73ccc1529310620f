package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/admin"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/cart"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/catalog"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/client"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/localstore"
	"github.com/cloud-wave-best-zizon/storefront-service/pkg/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// tokenKey is the local storage key of the saved bearer token.
const tokenKey = "bearer_token"

// app owns the client-side stores for one invocation.
type app struct {
	out     io.Writer
	logger  *zap.Logger
	local   *localstore.FileStore
	catalog *catalog.Store
	cart    *cart.Store
	admin   *admin.Gateway
}

func newApp(cfg *config.ClientConfig, httpClient *http.Client, out io.Writer, logger *zap.Logger) (*app, error) {
	dir := cfg.CartDir
	if dir == "" {
		d, err := localstore.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	local, err := localstore.New(dir)
	if err != nil {
		return nil, err
	}

	api := client.New(cfg.APIURL, httpClient)
	gateway := admin.NewGateway(api, logger)
	if token, ok, err := local.Load(tokenKey); err != nil {
		logger.Warn("Failed to read saved token", zap.Error(err))
	} else if ok {
		if err := gateway.RestoreToken(string(token)); err != nil {
			logger.Debug("Ignoring saved token", zap.Error(err))
		}
	}

	return &app{
		out:     out,
		logger:  logger,
		local:   local,
		catalog: catalog.NewStore(api, gateway, logger),
		cart:    cart.Open(local, logger),
		admin:   gateway,
	}, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("Failed to read .env:", err)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, &http.Client{Timeout: 15 * time.Second}, os.Stdout, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}

	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
