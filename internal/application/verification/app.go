package verification

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"gitlab.com/verigate/verigate-backend/internal/application/verification/cmd"
	"gitlab.com/verigate/verigate-backend/internal/application/verification/query"
)

type App struct {
	CMD   Command
	Query Query
}

type Command struct {
	Register *cmd.RegisterHandler
	Verify   *cmd.VerifyHandler
	Login    *cmd.LoginHandler
}

type Query struct {
	GetUser             *query.GetUserHandler
	GetUsers            *query.GetUsersHandler
	GetVerificationCode *query.GetVerificationCodeHandler
}

type Args struct {
	Pool     *pgxpool.Pool
	Users    cmd.UserRepo
	Codes    cmd.CodeRepo
	Notifier cmd.Notifier
	Tokens   cmd.TokenIssuer
}

func NewApp(args Args) *App {
	return &App{
		CMD: Command{
			Register: cmd.NewRegisterHandler(cmd.RegisterHandlerArgs{
				Users:    args.Users,
				Codes:    args.Codes,
				Notifier: args.Notifier,
			}),
			Verify: cmd.NewVerifyHandler(cmd.VerifyHandlerArgs{
				Users:  args.Users,
				Codes:  args.Codes,
				Tokens: args.Tokens,
			}),
			Login: cmd.NewLoginHandler(cmd.LoginHandlerArgs{
				Users:    args.Users,
				Codes:    args.Codes,
				Notifier: args.Notifier,
			}),
		},
		Query: Query{
			GetUser: query.NewGetUserHandler(query.GetUserHandlerArgs{
				Pool: args.Pool,
			}),
			GetUsers: query.NewGetUsersHandler(query.GetUsersHandlerArgs{
				Pool: args.Pool,
			}),
			GetVerificationCode: query.NewGetVerificationCodeHandler(args.Pool),
		},
	}
}
