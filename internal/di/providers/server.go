package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/readupapp/readup-server/internal/api"
	"github.com/readupapp/readup-server/internal/auth"
	"github.com/readupapp/readup-server/internal/config"
	"github.com/readupapp/readup-server/internal/logger"
	"github.com/readupapp/readup-server/internal/ratelimit"
	"github.com/readupapp/readup-server/internal/service"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideAuthRateLimiter provides the per-IP limiter for signup and login.
func ProvideAuthRateLimiter(i do.Injector) (*ratelimit.KeyedRateLimiter, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return ratelimit.PerMinute(cfg.Auth.AuthRatePerMinute), nil
}

// ProvideHTTPServer provides the HTTP server, started in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	limiter := do.MustInvoke[*ratelimit.KeyedRateLimiter](i)

	handler := api.NewServer(api.Options{
		Store:         storeHandle.Store,
		AuthService:   do.MustInvoke[*service.AuthService](i),
		BookService:   do.MustInvoke[*service.BookService](i),
		ReviewService: do.MustInvoke[*service.ReviewService](i),
		SearchService: do.MustInvoke[*service.SearchService](i),
		Tokens:        tokens,
		AuthLimiter:   limiter,
		CORSOrigins:   cfg.Server.CORSOrigins,
		Logger:        log.Logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
