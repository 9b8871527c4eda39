package integration

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"gitlab.com/tmsv2/tms-backend/internal/adapters/repos/postgres"
	columnapp "gitlab.com/tmsv2/tms-backend/internal/application/column"
	taskapp "gitlab.com/tmsv2/tms-backend/internal/application/task"
	verificationapp "gitlab.com/tmsv2/tms-backend/internal/application/verification"
)

type App struct {
	VerificationRepo *postgres.VerificationRepo
	ColumnRepo       *postgres.ColumnRepo
	TaskRepo         *postgres.TaskRepo
	Verification     *verificationapp.App
	Column           *columnapp.App
	Task             *taskapp.App
}

func NewApp(pool *pgxpool.Pool) *App {
	verificationRepo := postgres.NewVerificationRepo(pool, nil, nil)
	columnRepo := postgres.NewColumnRepo(pool, nil, nil)
	taskRepo := postgres.NewTaskRepo(pool, nil, nil)

	return &App{
		VerificationRepo: verificationRepo,
		ColumnRepo:       columnRepo,
		TaskRepo:         taskRepo,
		Verification: verificationapp.NewApp(verificationapp.Args{
			Repo: verificationRepo,
			Pool: pool,
		}),
		Column: columnapp.NewApp(columnapp.Args{
			Command: columnRepo,
			Query:   columnRepo,
		}),
		Task: taskapp.NewApp(taskapp.Args{
			Command: taskRepo,
			Query:   taskRepo,
		}),
	}
}
