package service

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/readupapp/readup-server/internal/auth"
	domainerrors "github.com/readupapp/readup-server/internal/errors"
	"github.com/readupapp/readup-server/internal/store"
	badgerstore "github.com/readupapp/readup-server/internal/store/badger"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := badgerstore.New(t.TempDir(), newTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTokens(t *testing.T) *auth.TokenService {
	t.Helper()

	tokens, err := auth.NewTokenService(strings.Repeat("ab", 32), time.Hour)
	require.NoError(t, err)
	return tokens
}

// requireStatus asserts that err is a domain error with the given HTTP status.
func requireStatus(t *testing.T, err error, status int) {
	t.Helper()

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr), "expected domain error, got %v", err)
	require.Equal(t, status, domainErr.HTTPStatus())
}
