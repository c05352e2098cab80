package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile"
	"github.com/Yeralkhan06/MyProfile3/pkg/apperror"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

type ProfileRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	repo        profile.Repository
}

func (s *ProfileRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	if err := RunMigrations(dsn, logger.NewNop()); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}
	// A second run must be a no-op.
	if err := RunMigrations(dsn, logger.NewNop()); err != nil {
		s.T().Fatalf("Second migration run failed: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool
	s.repo = NewPostgresProfileRepo(s.dbPool, logger.NewNop())
}

func (s *ProfileRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func (s *ProfileRepoIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	_, err := s.dbPool.Exec(ctx, `TRUNCATE profile CASCADE`)
	s.Require().NoError(err)
	_, err = s.dbPool.Exec(ctx, `
		INSERT INTO profile (id, first_name, last_name, email, location, bio)
		VALUES (1, 'Мақсұт', 'Ералхан', 'yeralkhan@example.com', 'Казахстан', 'Веб-разработчик')`)
	s.Require().NoError(err)
}

func TestProfileRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ProfileRepoIntegrationTestSuite))
}

func strPtr(v string) *string { return &v }

func (s *ProfileRepoIntegrationTestSuite) Test_Get_EmptyCollections() {
	p, err := s.repo.Get(context.Background(), profile.OwnerProfileID)
	s.Require().NoError(err)

	s.Equal("Мақсұт", p.FirstName)
	s.Nil(p.Phone)
	s.NotNil(p.Skills)
	s.Empty(p.Skills)
	s.NotNil(p.Experience)
	s.Empty(p.Education)
	s.Empty(p.Projects)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Get_NotFound() {
	_, err := s.repo.Get(context.Background(), 42)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Apply_RoundTripKeepsOrder() {
	ctx := context.Background()
	before, err := s.repo.Get(ctx, profile.OwnerProfileID)
	s.Require().NoError(err)

	err = s.repo.Apply(ctx, profile.OwnerProfileID, func(ctx context.Context, w profile.Writer) error {
		f := before.Fields
		f.Phone = strPtr("8 777 199 9922")
		if err := w.ReplaceProfile(ctx, f); err != nil {
			return err
		}
		if err := w.ReplaceSkills(ctx, []profile.Skill{
			{Name: "Java", Level: 80},
			{Name: "Go", Level: 95},
			{Name: "SQL", Level: 70, Category: strPtr("Backend")},
		}); err != nil {
			return err
		}
		return w.ReplaceExperience(ctx, []profile.Experience{
			{CompanyName: "B", Position: "Dev", StartDate: "2020-01-01", EndDate: strPtr("2021-01-01"), Technologies: []string{"z", "a", "m"}},
			{CompanyName: "A", Position: "Lead", StartDate: "2022-01-01"},
		})
	})
	s.Require().NoError(err)

	after, err := s.repo.Get(ctx, profile.OwnerProfileID)
	s.Require().NoError(err)

	s.Equal("8 777 199 9922", *after.Phone)
	s.True(after.UpdatedAt.After(before.UpdatedAt) || after.UpdatedAt.Equal(before.UpdatedAt))
	s.Require().Len(after.Skills, 3)
	s.Equal([]string{"Java", "Go", "SQL"}, []string{after.Skills[0].Name, after.Skills[1].Name, after.Skills[2].Name})
	s.Equal("Backend", *after.Skills[2].Category)

	s.Require().Len(after.Experience, 2)
	s.Equal("B", after.Experience[0].CompanyName)
	s.Equal([]string{"z", "a", "m"}, after.Experience[0].Technologies)
	s.Nil(after.Experience[1].EndDate)
	s.Equal([]string{}, after.Experience[1].Technologies)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Apply_EmptyReplaceClears() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Apply(ctx, profile.OwnerProfileID, func(ctx context.Context, w profile.Writer) error {
		return w.ReplaceSkills(ctx, []profile.Skill{{Name: "Go", Level: 90}})
	}))
	s.Require().NoError(s.repo.Apply(ctx, profile.OwnerProfileID, func(ctx context.Context, w profile.Writer) error {
		return w.ReplaceSkills(ctx, []profile.Skill{})
	}))

	p, err := s.repo.Get(ctx, profile.OwnerProfileID)
	s.Require().NoError(err)
	s.Empty(p.Skills)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Apply_ErrorRollsBack() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Apply(ctx, profile.OwnerProfileID, func(ctx context.Context, w profile.Writer) error {
		return w.ReplaceEducation(ctx, []profile.Education{{InstitutionName: "МУА", Degree: "Бакалавр", StartDate: "2018-09-01"}})
	}))

	boom := errors.New("boom")
	err := s.repo.Apply(ctx, profile.OwnerProfileID, func(ctx context.Context, w profile.Writer) error {
		if err := w.ReplaceEducation(ctx, []profile.Education{}); err != nil {
			return err
		}
		if err := w.ReplaceSkills(ctx, []profile.Skill{{Name: "Go"}}); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	p, err := s.repo.Get(ctx, profile.OwnerProfileID)
	s.Require().NoError(err)
	s.Len(p.Education, 1)
	s.Empty(p.Skills)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Apply_NotFound() {
	err := s.repo.Apply(context.Background(), 42, func(context.Context, profile.Writer) error { return nil })
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Get_LegacyTechnologies() {
	ctx := context.Background()
	_, err := s.dbPool.Exec(ctx, `
		INSERT INTO projects (profile_id, sort_order, project_name, technologies) VALUES
		(1, 0, 'nulled', NULL),
		(1, 1, 'json-null', 'null'::jsonb),
		(1, 2, 'object', '{"a":1}'::jsonb)`)
	s.Require().NoError(err)

	p, err := s.repo.Get(ctx, profile.OwnerProfileID)
	s.Require().NoError(err)
	s.Require().Len(p.Projects, 3)
	for _, pr := range p.Projects {
		s.Equal([]string{}, pr.Technologies, pr.Name)
	}
}

func (s *ProfileRepoIntegrationTestSuite) Test_Apply_ConcurrentWritersDoNotDuplicate() {
	ctx := context.Background()
	skills := []profile.Skill{{Name: "Go", Level: 90}, {Name: "SQL", Level: 70}}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.repo.Apply(ctx, profile.OwnerProfileID, func(ctx context.Context, w profile.Writer) error {
				return w.ReplaceSkills(ctx, skills)
			})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		s.NoError(err)
	}

	p, err := s.repo.Get(ctx, profile.OwnerProfileID)
	s.Require().NoError(err)
	s.Len(p.Skills, 2)
}

func (s *ProfileRepoIntegrationTestSuite) Test_ReplaceProfile_EmailConflict() {
	ctx := context.Background()
	_, err := s.dbPool.Exec(ctx, `INSERT INTO profile (id, first_name, last_name, email) VALUES (2, 'a', 'b', 'taken@example.com')`)
	s.Require().NoError(err)

	err = s.repo.Apply(ctx, profile.OwnerProfileID, func(ctx context.Context, w profile.Writer) error {
		return w.ReplaceProfile(ctx, profile.Fields{FirstName: "x", LastName: "y", Email: "taken@example.com"})
	})
	s.ErrorIs(err, apperror.ErrConflict)
}
