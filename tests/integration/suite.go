package integration

import (
	"context"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // Import the stdlib driver for pgx
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	tmsv2 "gitlab.com/tmsv2/tms-backend"
	postgrespkg "gitlab.com/tmsv2/tms-backend/pkg/postgres"
	"gitlab.com/tmsv2/tms-backend/pkg/watermillx"
)

type TestSuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	pgPool      *pgxpool.Pool
	app         *App
}

func (s *TestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:17-alpine"),
		postgres.WithDatabase("tms_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	s.Require().NoError(err)
	s.pgContainer = pgContainer

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.pgPool, err = pgxpool.New(ctx, connStr)
	s.Require().NoError(err)

	s.T().Logf("Running migrations on database: %s", connStr)
	connStr = strings.Replace(connStr, "postgres://", "pgx://", 1)
	err = postgrespkg.Migrate(connStr, &tmsv2.Migrations)
	s.Require().NoError(err)

	wlogger := watermill.NewStdLogger(true, true)
	err = watermillx.InitializeEventSchema(ctx, s.pgPool, wlogger)
	s.Require().NoError(err)

	s.app = NewApp(s.pgPool)
}

func (s *TestSuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}

	if s.pgContainer != nil {
		ctx := context.Background()
		err := s.pgContainer.Terminate(ctx)
		s.Require().NoError(err)
	}
}

func (s *TestSuite) AfterTest(suiteName, testName string) {
	// Watermill never deletes delivered rows, so the outbox and its consumer
	// offsets are truncated too; otherwise outbox counts leak between tests.
	_, err := s.pgPool.Exec(context.Background(),
		"TRUNCATE TABLE verifications, columns, tasks, watermill_events_verification, watermill_offsets_events_verification RESTART IDENTITY CASCADE")
	s.Require().NoError(err)
	s.T().Logf("Test data truncated after test: %s in suite: %s", testName, suiteName)
}

func (s *TestSuite) App() *App {
	return s.app
}

// OutboxEventCount counts outbox rows for an event type name on the
// verification stream.
func (s *TestSuite) OutboxEventCount(typeName string) int {
	var count int
	err := s.pgPool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM watermill_events_verification WHERE metadata->>'name' = $1`,
		typeName,
	).Scan(&count)
	s.Require().NoError(err)
	return count
}
