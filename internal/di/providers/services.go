package providers

import (
	"github.com/samber/do/v2"

	"github.com/readupapp/readup-server/internal/auth"
	"github.com/readupapp/readup-server/internal/logger"
	"github.com/readupapp/readup-server/internal/service"
)

// ProvideAuthService provides the signup/login service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokens, log.Logger), nil
}

// ProvideBookService provides the catalog service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, log.Logger), nil
}

// ProvideReviewService provides the review service.
func ProvideReviewService(i do.Injector) (*service.ReviewService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReviewService(storeHandle.Store, log.Logger), nil
}
