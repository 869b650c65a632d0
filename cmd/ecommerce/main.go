package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/gastonprogram/e-commerce-backend/pkg/domain/service"
	"github.com/gastonprogram/e-commerce-backend/pkg/infrastructure/auth"
	"github.com/gastonprogram/e-commerce-backend/pkg/infrastructure/event"
	"github.com/gastonprogram/e-commerce-backend/pkg/infrastructure/mysql"
	"github.com/gastonprogram/e-commerce-backend/pkg/transport"
)

type config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseDSN     string        `envconfig:"DATABASE_DSN" required:"true"`
	JWTSecret       string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL        time.Duration `envconfig:"TOKEN_TTL" default:"1h"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

func main() {
	app := &cli.App{
		Name:   "ecommerce",
		Usage:  "e-commerce REST backend",
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(_ *cli.Context) error {
	logger := log.New()
	logger.SetFormatter(&log.JSONFormatter{})

	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		return err
	}

	db, err := mysql.Connect(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := mysql.Migrate(db); err != nil {
		return err
	}

	users := mysql.NewUserRepository(db)
	products := mysql.NewProductRepository(db)
	categories := mysql.NewCategoryRepository(db)
	orders := mysql.NewOrderRepository(db)
	dispatcher := event.NewLogDispatcher(logger)

	handler := &transport.Handler{
		Users:      service.NewUserService(users, auth.NewPasswordManager(), dispatcher),
		Products:   service.NewProductService(products, categories, users, orders, dispatcher),
		Categories: service.NewCategoryService(categories, products, dispatcher),
		Orders:     service.NewOrderService(orders, products, users, dispatcher),
		Tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		Logger:     logger,
	}

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: transport.NewRouter(handler),
	}

	errs := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("server started")
		errs <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-stop:
		logger.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}
