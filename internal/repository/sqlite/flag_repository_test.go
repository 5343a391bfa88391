package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/nahuatl/internal/repository"
	"github.com/vytor/nahuatl/internal/repository/sqlite"
	"github.com/vytor/nahuatl/internal/testutil"
)

type FlagRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.FlagRepository
}

func (s *FlagRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewFlagRepository(s.db)
}

func (s *FlagRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *FlagRepositorySuite) TestGetMissingKey() {
	value, ok, err := s.repo.Get(context.Background(), "device-a", "signed_in")
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(value)
}

func (s *FlagRepositorySuite) TestSetOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Set(ctx, "device-a", "identity", `{"email":"a@x.mx"}`))
	s.Require().NoError(s.repo.Set(ctx, "device-a", "identity", `{"email":"b@x.mx"}`))

	value, ok, err := s.repo.Get(ctx, "device-a", "identity")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(`{"email":"b@x.mx"}`, value)
}

func (s *FlagRepositorySuite) TestDevicesAreIsolated() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Set(ctx, "device-a", "signed_in", "true"))

	_, ok, err := s.repo.Get(ctx, "device-b", "signed_in")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *FlagRepositorySuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Set(ctx, "device-a", "signed_in", "true"))
	s.Require().NoError(s.repo.Delete(ctx, "device-a", "signed_in"))

	_, ok, err := s.repo.Get(ctx, "device-a", "signed_in")
	s.Require().NoError(err)
	s.False(ok)

	// Deleting an absent key is not an error.
	s.NoError(s.repo.Delete(ctx, "device-a", "signed_in"))
}

func TestFlagRepositorySuite(t *testing.T) {
	suite.Run(t, new(FlagRepositorySuite))
}
