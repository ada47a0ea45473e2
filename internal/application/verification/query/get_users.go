package query

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/verigate/verigate-backend/pkg/errorx"
	"gitlab.com/verigate/verigate-backend/pkg/otelx"
)

type GetUsersResponse struct {
	Users []UserResponse `json:"users"`
}

type GetUsersHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	pool   *pgxpool.Pool
}

type GetUsersHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Pool   *pgxpool.Pool
}

func NewGetUsersHandler(args GetUsersHandlerArgs) *GetUsersHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &GetUsersHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		pool:   args.Pool,
	}
}

func (h *GetUsersHandler) Handle(ctx context.Context) (*GetUsersResponse, error) {
	const op = "query.GetUsersHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "GetUsersHandler.Handle")
	defer span.End()

	rows, err := h.pool.Query(ctx, `
        SELECT id, email, phone, is_verified, created_at, updated_at
        FROM users
        ORDER BY created_at
    `)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to query users")
		return nil, errorx.Wrap(err, op)
	}
	defer rows.Close()

	res := GetUsersResponse{Users: []UserResponse{}}
	for rows.Next() {
		var u UserResponse
		err := rows.Scan(&u.ID, &u.Email, &u.Phone, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to scan user row")
			return nil, errorx.Wrap(err, op)
		}
		res.Users = append(res.Users, u)
	}
	if err := rows.Err(); err != nil {
		otelx.RecordSpanError(span, err, "failed to iterate user rows")
		return nil, errorx.Wrap(err, op)
	}

	return &res, nil
}
