package services_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/nahuatl/internal/audio"
	"github.com/vytor/nahuatl/internal/catalog"
	"github.com/vytor/nahuatl/internal/flags"
	"github.com/vytor/nahuatl/internal/repository/sqlite"
	"github.com/vytor/nahuatl/internal/screens"
	"github.com/vytor/nahuatl/internal/services"
	"github.com/vytor/nahuatl/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	registry  *screens.Registry
	provider  catalog.Provider
	auth      services.AuthService
	pins      services.PinService
	lessons   services.LessonService
	dashboard services.DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, db) })

	catalogRepo := sqlite.NewCatalogRepository(db)
	doc, err := catalog.Embedded()
	require.NoError(t, err)
	require.NoError(t, catalog.Import(context.Background(), catalogRepo, doc))

	audioDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(audioDir, "niltze.mp3"), []byte("ID3"), 0o644))

	registry := screens.NewRegistry()
	provider := catalog.NewService(catalogRepo)
	auth := services.NewAuthService(sqlite.NewFlagRepository(db), registry, flags.WithBcryptCost(bcrypt.MinCost))
	return &fixture{
		registry:  registry,
		provider:  provider,
		auth:      auth,
		pins:      services.NewPinService(auth, registry, 4, 10*time.Millisecond),
		lessons:   services.NewLessonService(provider, audio.NewLibrary(audioDir), registry, 10),
		dashboard: services.NewDashboardService(provider),
	}
}
