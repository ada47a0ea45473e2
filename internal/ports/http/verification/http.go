package verificationhttp

import (
	"log/slog"
	"net/http"

	"github.com/ARUMANDESU/validation"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	verificationapp "gitlab.com/verigate/verigate-backend/internal/application/verification"
	"gitlab.com/verigate/verigate-backend/internal/application/verification/cmd"
	"gitlab.com/verigate/verigate-backend/internal/application/verification/query"
	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/internal/domain/valueobject/channel"
	"gitlab.com/verigate/verigate-backend/pkg/env"
	"gitlab.com/verigate/verigate-backend/pkg/httpx"
	"gitlab.com/verigate/verigate-backend/pkg/logging"
	"gitlab.com/verigate/verigate-backend/pkg/otelx"
	"gitlab.com/verigate/verigate-backend/pkg/sanitizex"
	"gitlab.com/verigate/verigate-backend/pkg/validationx"
)

var (
	tracer = otel.Tracer("verigate/internal/ports/http/verification")
	logger = otelslog.NewLogger("verigate/internal/ports/http/verification")
)

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	cmd        *verificationapp.Command
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
		cmd:        &args.App.CMD,
		query:      &args.App.Query,
		errhandler: args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/verification", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/verify", h.Verify)
		r.Post("/login", h.Login)
	})

	if env.Current() == env.Dev || env.Current() == env.Local || env.Current() == env.Test {
		r.Get("/dev/verification/code/{email}", h.GetVerificationCode)
	}
}

type RegisterRequest struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Channel string `json:"channel"`
}

func (r *RegisterRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
	r.Phone = sanitizex.CleanSingleLine(r.Phone)
	r.Channel = sanitizex.CleanSingleLine(r.Channel)
}

func (r *RegisterRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{
		"email":   logging.RedactEmail(r.Email),
		"phone":   logging.RedactPhone(r.Phone),
		"channel": r.Channel,
	})
}

func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
		validation.Field(&r.Phone, validationx.PhoneRules...),
		validation.Field(&r.Channel, channel.Rules...),
	)
}

func (h *HTTP) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Register")
	defer span.End()

	var req RegisterRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	err := req.Validate()
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	cmd := cmd.Register{
		Email:   req.Email,
		Phone:   req.Phone,
		Channel: channel.Channel(req.Channel),
	}
	if err := h.cmd.Register.Handle(ctx, cmd); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to register user")
		return
	}

	httpx.Success(w, r, http.StatusAccepted, nil)
}

type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r *VerifyRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
	r.Code = sanitizex.CleanSingleLine(r.Code)
}

func (r *VerifyRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *VerifyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
		validation.Field(&r.Code, validationx.CodeRules...),
	)
}

func (h *HTTP) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Verify")
	defer span.End()

	var req VerifyRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	err := req.Validate()
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	result, err := h.cmd.Verify.Handle(ctx, cmd.Verify{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to verify user")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{
		"token": result.Token,
		"user":  userResponse(result.User),
	})
}

type LoginRequest struct {
	Email string `json:"email"`
}

func (r *LoginRequest) Sanitized() {
	r.Email = sanitizex.CleanSingleLine(r.Email)
}

func (r *LoginRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
	)
}

func (h *HTTP) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Login")
	defer span.End()

	var req LoginRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	err := req.Validate()
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	result, err := h.cmd.Login.Handle(ctx, cmd.Login{Email: req.Email})
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to log user in")
		return
	}

	if result.Resent {
		// another round of verification started, the caller should prompt for
		// the new code
		httpx.Success(w, r, http.StatusAccepted, httpx.Envelope{
			"user": userResponse(result.User),
		})
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{
		"user": userResponse(result.User),
	})
}

func userResponse(u *user.User) query.UserResponse {
	return query.UserResponse{
		ID:         u.ID().String(),
		Email:      u.Email(),
		Phone:      u.Phone(),
		IsVerified: u.IsVerified(),
		CreatedAt:  u.CreatedAt(),
		UpdatedAt:  u.UpdatedAt(),
	}
}

func (h *HTTP) GetVerificationCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetVerificationCode")
	defer span.End()

	email := chi.URLParam(r, "email")
	email = sanitizex.CleanSingleLine(email)

	err := validation.Validate(email, validationx.EmailRules...)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate email")
		return
	}

	code, err := h.query.GetVerificationCode.Handle(ctx, email)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get verification code")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"code": code})
}
