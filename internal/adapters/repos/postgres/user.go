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
	"gitlab.com/verigate/verigate-backend/pkg/errorx"
	"gitlab.com/verigate/verigate-backend/pkg/otelx"
	"gitlab.com/verigate/verigate-backend/pkg/postgres"
	"gitlab.com/verigate/verigate-backend/pkg/watermillx"
)

type UserRepo struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	pool    *pgxpool.Pool
	wlogger watermill.LoggerAdapter
}

// NewUserRepo creates a new instance of UserRepo.
// It also sets default tracer and logger if they are nil.
//
//	WARNING; panics if pool is nil
func NewUserRepo(pool *pgxpool.Pool, t trace.Tracer, l *slog.Logger) *UserRepo {
	if pool == nil {
		panic("pgxpool.Pool cannot be nil")
	}
	if t == nil {
		t = tracer
	}
	if l == nil {
		l = logger
	}

	return &UserRepo{
		tracer:  t,
		logger:  l,
		pool:    pool,
		wlogger: watermill.NewSlogLogger(l),
	}
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepo.GetUserByEmail")
	defer span.End()

	query := `
        SELECT id, email, phone, is_verified, created_at, updated_at
        FROM users
        WHERE email = $1;
    `

	var dto UserDTO
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&dto.ID, &dto.Email, &dto.Phone,
		&dto.IsVerified, &dto.CreatedAt, &dto.UpdatedAt,
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get user by email")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewResourceNotFound("user").WithCause(err)
		}
		return nil, err
	}

	return UserToDomain(dto), nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepo.GetUserByID")
	defer span.End()

	query := `
        SELECT id, email, phone, is_verified, created_at, updated_at
        FROM users
        WHERE id = $1;
    `

	var dto UserDTO
	err := r.pool.QueryRow(ctx, query, uuid.UUID(id)).Scan(
		&dto.ID, &dto.Email, &dto.Phone,
		&dto.IsVerified, &dto.CreatedAt, &dto.UpdatedAt,
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to get user by id")
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorx.NewResourceNotFound("user").WithCause(err)
		}
		return nil, err
	}

	return UserToDomain(dto), nil
}

func (r *UserRepo) GetAllUsers(ctx context.Context) ([]*user.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepo.GetAllUsers")
	defer span.End()

	query := `
        SELECT id, email, phone, is_verified, created_at, updated_at
        FROM users
        ORDER BY created_at;
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to query users")
		return nil, err
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		var dto UserDTO
		err := rows.Scan(
			&dto.ID, &dto.Email, &dto.Phone,
			&dto.IsVerified, &dto.CreatedAt, &dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to scan user row")
			return nil, err
		}
		users = append(users, UserToDomain(dto))
	}
	if err := rows.Err(); err != nil {
		otelx.RecordSpanError(span, err, "failed to iterate user rows")
		return nil, err
	}

	return users, nil
}

func (r *UserRepo) SaveUser(ctx context.Context, u *user.User) error {
	ctx, span := r.tracer.Start(ctx, "UserRepo.SaveUser")
	defer span.End()

	dto := DomainToUserDTO(u)

	query := `
        INSERT INTO users (id, email, phone, is_verified, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	return postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		res, err := tx.Exec(ctx, query,
			dto.ID, dto.Email, dto.Phone,
			dto.IsVerified, dto.CreatedAt, dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to insert user")
			return mapConstraintErr(err)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when inserting user")
			return fmt.Errorf("failed to insert user: %w", ErrNoRowsAffected)
		}

		if events := u.Uncommitted(); len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return err
			}
		}
		return nil
	})
}

// UpdateUserByEmail loads the row FOR UPDATE, applies fn, and writes the
// result back. Competing updates for the same user serialize on the row lock.
func (r *UserRepo) UpdateUserByEmail(
	ctx context.Context,
	email string,
	fn func(ctx context.Context, u *user.User) error,
) error {
	ctx, span := r.tracer.Start(ctx, "UserRepo.UpdateUserByEmail")
	defer span.End()
	if fn == nil {
		otelx.RecordSpanError(span, ErrNilFunc, "update function cannot be nil")
		return ErrNilFunc
	}

	selectquery := `
        SELECT id, email, phone, is_verified, created_at, updated_at
        FROM users
        WHERE email = $1
        FOR UPDATE;
    `
	updatequery := `
        UPDATE users
        SET email = $2, phone = $3, is_verified = $4, updated_at = $5
        WHERE id = $1;
    `

	return postgres.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		var dto UserDTO
		err := tx.QueryRow(ctx, selectquery, email).Scan(
			&dto.ID, &dto.Email, &dto.Phone,
			&dto.IsVerified, &dto.CreatedAt, &dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to get user for update")
			if errors.Is(err, pgx.ErrNoRows) {
				return errorx.NewResourceNotFound("user").WithCause(err)
			}
			return err
		}

		u := UserToDomain(dto)

		if err := fn(ctx, u); err != nil {
			otelx.RecordSpanError(span, err, "failed to apply update function")
			return err
		}

		dto = DomainToUserDTO(u)

		res, err := tx.Exec(ctx, updatequery,
			dto.ID, dto.Email, dto.Phone, dto.IsVerified, dto.UpdatedAt,
		)
		if err != nil {
			otelx.RecordSpanError(span, err, "failed to update user")
			return mapConstraintErr(err)
		}
		if res.RowsAffected() == 0 {
			otelx.RecordSpanError(span, ErrNoRowsAffected, "no rows affected when updating user")
			return fmt.Errorf("failed to update user: %w", ErrNoRowsAffected)
		}

		if events := u.Uncommitted(); len(events) > 0 {
			if err := watermillx.Publish(ctx, tx, r.wlogger, events...); err != nil {
				otelx.RecordSpanError(span, err, "failed to publish events")
				return err
			}
		}

		return nil
	})
}
