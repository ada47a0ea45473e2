package query

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gitlab.com/verigate/verigate-backend/pkg/errorx"
)

// GetVerificationCodeHandler exists for test environments only; the HTTP port
// mounts it exclusively outside prod.
type GetVerificationCodeHandler struct {
	pool *pgxpool.Pool
}

func NewGetVerificationCodeHandler(pool *pgxpool.Pool) *GetVerificationCodeHandler {
	return &GetVerificationCodeHandler{
		pool: pool,
	}
}

func (h *GetVerificationCodeHandler) Handle(ctx context.Context, email string) (string, error) {
	var code string
	err := h.pool.QueryRow(ctx, `
        SELECT c.code
        FROM auth_codes c JOIN users u ON c.user_id = u.id
        WHERE u.email = $1
        ORDER BY c.created_at DESC
        LIMIT 1
    `, email).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errorx.NewNotFound().WithCause(err)
		}
		return "", err
	}
	return code, nil
}
