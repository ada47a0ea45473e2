package mail

import (
	mailevent "gitlab.com/verigate/verigate-backend/internal/application/mail/event"
)

type App struct {
	UserVerified *mailevent.UserVerifiedHandler
}

type Args struct {
	Mailsender mailevent.MailSender
}

func NewApp(args Args) *App {
	return &App{
		UserVerified: mailevent.NewUserVerifiedHandler(mailevent.UserVerifiedHandlerArgs{
			Mailsender: args.Mailsender,
		}),
	}
}
