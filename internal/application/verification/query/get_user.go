package query

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/pkg/errorx"
	"gitlab.com/verigate/verigate-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("verigate/application/verification/query")
	logger = otelslog.NewLogger("verigate/application/verification/query")
)

type GetUser struct {
	ID user.ID `json:"id"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type GetUserHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	pool   *pgxpool.Pool
}

type GetUserHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Pool   *pgxpool.Pool
}

func NewGetUserHandler(args GetUserHandlerArgs) *GetUserHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &GetUserHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		pool:   args.Pool,
	}
}

func (h *GetUserHandler) Handle(ctx context.Context, query GetUser) (*UserResponse, error) {
	const op = "query.GetUserHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "GetUserHandler.Handle",
		trace.WithAttributes(attribute.String("user.id", query.ID.String())),
	)
	defer span.End()

	var res UserResponse
	err := h.pool.QueryRow(ctx, `
        SELECT id, email, phone, is_verified, created_at, updated_at
        FROM users
        WHERE id = $1
    `, query.ID).Scan(
		&res.ID, &res.Email, &res.Phone, &res.IsVerified,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get user by id")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewResourceNotFound("user").WithCause(err)
		}
		return nil, errorx.Wrap(err, op)
	}

	return &res, nil
}
