package userhttp

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	verificationapp "gitlab.com/verigate/verigate-backend/internal/application/verification"
	"gitlab.com/verigate/verigate-backend/internal/application/verification/query"
	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/pkg/errorx"
	"gitlab.com/verigate/verigate-backend/pkg/httpx"
	"gitlab.com/verigate/verigate-backend/pkg/otelx"
	"gitlab.com/verigate/verigate-backend/pkg/sanitizex"
)

var (
	tracer = otel.Tracer("verigate/internal/ports/http/user")
	logger = otelslog.NewLogger("verigate/internal/ports/http/user")
)

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	query      *verificationapp.Query
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	App        *verificationapp.App
	Errhandler *httpx.ErrorHandler
}

func NewHTTP(args Args) *HTTP {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &HTTP{
		tracer:     args.Tracer,
		logger:     args.Logger,
		query:      &args.App.Query,
		errhandler: args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/users", func(r chi.Router) {
		r.Get("/", h.GetUsers)
		r.Get("/{id}", h.GetUser)
	})
}

func (h *HTTP) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetUsers")
	defer span.End()

	res, err := h.query.GetUsers.Handle(ctx)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get users")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"users": res.Users})
}

func (h *HTTP) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetUser")
	defer span.End()

	rawID := sanitizex.CleanSingleLine(chi.URLParam(r, "id"))

	id, err := user.ParseID(rawID)
	if err != nil {
		h.errhandler.HandleError(w, r, span, errorx.NewInvalidRequest().WithCause(err), "failed to parse user id")
		return
	}
	otelx.SetSpanAttrs(span, map[string]any{"user.id": id.String()})

	res, err := h.query.GetUser.Handle(ctx, query.GetUser{ID: id})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get user")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"user": res})
}
