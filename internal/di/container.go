// Package di provides dependency injection configuration for the ReadUp server.
package di

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/readupapp/readup-server/internal/auth"
	"github.com/readupapp/readup-server/internal/config"
	"github.com/readupapp/readup-server/internal/di/providers"
	"github.com/readupapp/readup-server/internal/logger"
	"github.com/readupapp/readup-server/internal/ratelimit"
	"github.com/readupapp/readup-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideTokenService)

	// Storage and search
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideReviewService)
	do.Provide(injector, providers.ProvideSearchService)

	// Server
	do.Provide(injector, providers.ProvideAuthRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// Invocation order matters: the store and index must exist before the
// services, and the reindex runs after the indexer is wired.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)

	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.ReviewService](injector)
	searchService := do.MustInvoke[*service.SearchService](injector)

	_ = do.MustInvoke[*ratelimit.KeyedRateLimiter](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Rebuild the index from the store so search survives mapping changes.
	if err := searchService.Reindex(context.Background()); err != nil {
		log := do.MustInvoke[*logger.Logger](injector)
		log.Warn("Startup search reindex failed", "error", err)
	}

	return nil
}
