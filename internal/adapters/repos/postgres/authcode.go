package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/internal/domain/verification"
	"gitlab.com/verigate/verigate-backend/pkg/ctxs"
	"gitlab.com/verigate/verigate-backend/pkg/errorx"
	"gitlab.com/verigate/verigate-backend/pkg/otelx"
	"gitlab.com/verigate/verigate-backend/pkg/postgres"
	"gitlab.com/verigate/verigate-backend/pkg/watermillx"
)

// AuthCodeRepo persists issued codes. Reads and writes join the ambient
// transaction when one is on the context, so code checks made inside a
// user-row lock stay consistent with it.
type AuthCodeRepo struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	pool    *pgxpool.Pool
	wlogger watermill.LoggerAdapter
}

// NewAuthCodeRepo creates a new instance of AuthCodeRepo.
// It also sets default tracer and logger if they are nil.
//
//	WARNING; panics if pool is nil
func NewAuthCodeRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *AuthCodeRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &AuthCodeRepo{
		tracer:  t,
		logger:  l,
		pool:    pool,
		wlogger: watermill.NewSlogLogger(l),
	}
}

func (r *AuthCodeRepo) SaveCode(ctx context.Context, c *verification.AuthCode) error {
	ctx, span := r.tracer.Start(ctx, "AuthCodeRepo.SaveCode")
	defer span.End()

	dto := DomainToAuthCodeDTO(c)

	query := `
        INSERT INTO auth_codes (user_id, code, created_at)
        VALUES ($1, $2, $3)
    `

	if tx, ok := ctxs.Tx(ctx); ok {
		return r.saveCodeTx(ctx, span, tx, c, dto, query)
	}

	return postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		return r.saveCodeTx(ctx, span, tx, c, dto, query)
	})
}

func (r *AuthCodeRepo) saveCodeTx(
	ctx context.Context,
	span trace.Span,
	tx pgx.Tx,
	c *verification.AuthCode,
	dto AuthCodeDTO,
	query string,
) error {
	res, err := tx.Exec(ctx, query, dto.UserID, dto.Code, dto.CreatedAt)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to insert auth code")
		return err
	}
	if res.RowsAffected() == 0 {
		otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when inserting auth code")
		return fmt.Errorf("failed to insert auth code: %w", ErrNoRowsAffected)
	}

	if events := c.Uncommitted(); len(events) > 0 {
		if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
			otelx.RecordSpanError(span, err, "failed to publish events")
			return err
		}
	}
	return nil
}

func (r *AuthCodeRepo) GetLatestCodeByUserID(ctx context.Context, userID user.ID) (*verification.AuthCode, error) {
	ctx, span := r.tracer.Start(ctx, "AuthCodeRepo.GetLatestCodeByUserID")
	defer span.End()

	query := `
        SELECT id, user_id, code, created_at
        FROM auth_codes
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT 1;
    `

	var row pgx.Row
	if tx, ok := ctxs.Tx(ctx); ok {
		row = tx.QueryRow(ctx, query, uuid.UUID(userID))
	} else {
		row = r.pool.QueryRow(ctx, query, uuid.UUID(userID))
	}

	var dto AuthCodeDTO
	err := row.Scan(&dto.ID, &dto.UserID, &dto.Code, &dto.CreatedAt)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get latest auth code")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewNoCodeIssued().WithCause(err)
		}
		return nil, err
	}

	return AuthCodeToDomain(dto), nil
}
