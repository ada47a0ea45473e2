package http

import (
	"github.com/go-chi/chi/v5"

	verificationapp "gitlab.com/verigate/verigate-backend/internal/application/verification"
	userhttp "gitlab.com/verigate/verigate-backend/internal/ports/http/user"
	verificationhttp "gitlab.com/verigate/verigate-backend/internal/ports/http/verification"
	"gitlab.com/verigate/verigate-backend/pkg/httpx"
)

type Port struct {
	verification *verificationhttp.HTTP
	user         *userhttp.HTTP
}

type Args struct {
	VerificationApp *verificationapp.App
	Errhandler      *httpx.ErrorHandler
}

func NewPort(args Args) *Port {
	return &Port{
		verification: verificationhttp.NewHTTP(verificationhttp.Args{
			App:        args.VerificationApp,
			Errhandler: args.Errhandler,
		}),
		user: userhttp.NewHTTP(userhttp.Args{
			App:        args.VerificationApp,
			Errhandler: args.Errhandler,
		}),
	}
}

func (p *Port) Route(r chi.Router) chi.Router {
	if r == nil {
		r = chi.NewRouter()
	}

	p.verification.Route(r)
	p.user.Route(r)

	return r
}
