package verification

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"gitlab.com/tmsv2/tms-backend/internal/application/verification/cmd"
	"gitlab.com/tmsv2/tms-backend/internal/application/verification/query"
)

type App struct {
	CMD   Command
	Query Query
}

type Command struct {
	Issue    *cmd.IssueHandler
	Validate *cmd.ValidateHandler
}

type Query struct {
	GetVerificationCode *query.GetVerificationCodeHandler
}

type Args struct {
	Repo cmd.Repo
	Pool *pgxpool.Pool
}

func NewApp(args Args) *App {
	return &App{
		CMD: Command{
			Issue: cmd.NewIssueHandler(cmd.IssueHandlerArgs{
				Repo: args.Repo,
			}),
			Validate: cmd.NewValidateHandler(cmd.ValidateHandlerArgs{
				Repo: args.Repo,
			}),
		},
		Query: Query{
			GetVerificationCode: query.NewGetVerificationCodeHandler(args.Pool),
		},
	}
}
