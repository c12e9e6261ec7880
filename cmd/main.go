package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/mimirpublish/internal/channel"
	"github.com/Vovarama1992/mimirpublish/internal/delivery"
	ws "github.com/Vovarama1992/mimirpublish/internal/delivery/ws"
	"github.com/Vovarama1992/mimirpublish/internal/destinations"
	"github.com/Vovarama1992/mimirpublish/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {

	// LOGGER
	zcore, _ := zap.NewProduction()
	defer zcore.Sync()
	zl := logger.NewZapLogger(zcore.Sugar())

	// ENV
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	secret := os.Getenv("AUTH_SECRET")
	if secret == "" {
		panic("AUTH_SECRET is not set")
	}

	password := os.Getenv("OPERATOR_PASSWORD")
	if password == "" {
		zl.Log(logger.LogEntry{
			Level:   "warn",
			Message: "OPERATOR_PASSWORD is not set; operator API logins are disabled",
		})
	}

	// the host passes its origin as ?origin= on the launch URL
	origin := channel.OriginFromLaunchURL(os.Getenv("LAUNCH_URL"))

	table, err := destinations.Load(os.Getenv("DESTINATIONS_FILE"))
	if err != nil {
		panic("cannot load destinations: " + err.Error())
	}

	// HOST CHANNEL
	hub := ws.NewHub(zl)
	ch := channel.New(origin, hub, zl)

	// SERVICES
	normalizer := domain.NewNormalizer(table, zl)
	editor := domain.NewEditor(normalizer, table, ch, zl)
	editor.Start(ch)

	authService := domain.NewAuthService(password, secret)

	// HANDLERS
	authHandler := delivery.NewAuthHandler(authService, zl)
	assetHandler := delivery.NewAssetHandler(editor, table, zl)

	// ROUTER
	r := chi.NewRouter()

	allowed := []string{"*"}
	if origin != "" {
		allowed = []string{origin}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Auth"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, authHandler, authService, assetHandler)

	r.Get("/ws", ws.WSHandler(hub, ch, zl))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "server started",
			Fields: map[string]any{
				"port":         port,
				"origin":       origin,
				"destinations": table.Known(),
			},
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
