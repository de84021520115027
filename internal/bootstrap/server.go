package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/nived-gurung/trekbooking/api"
	"github.com/nived-gurung/trekbooking/config"
)

type Handlers struct {
	Auth     *api.AuthHandler
	Catalog  *api.CatalogHandler
	Bookings *api.BookingHandler

	// CurrentUser guards the booking routes; anonymous callers get 401.
	CurrentUser api.CurrentUserFunc
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger, h Handlers) error {
	if cfg.Env != "dev" && cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	h.Auth.Register(router.Group("/auth"))
	h.Catalog.RegisterTreks(router.Group("/treks"))
	h.Catalog.RegisterTravel(router.Group("/travel"))
	h.Bookings.Register(router.Group("/bookings", api.RequireUser(h.CurrentUser)))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/trekbooking.swagger.json"),
		)))
	}

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	log.Info().Str("address", cfg.HTTP.Address).Msg("http server started")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
