package mocks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
	"gitlab.com/verigate/verigate-backend/internal/domain/verification"
	"gitlab.com/verigate/verigate-backend/pkg/errorx"
)

// CodeRepo keeps codes append-only per user, newest last, mirroring the
// auth_codes table.
type CodeRepo struct {
	*EventRepo
	dbbyUserID map[user.ID][]*verification.AuthCode
	saveErr    error
	mu         sync.Mutex
}

func NewCodeRepo() *CodeRepo {
	return &CodeRepo{
		EventRepo:  NewEventRepo(),
		dbbyUserID: make(map[user.ID][]*verification.AuthCode),
	}
}

func (r *CodeRepo) SaveCode(ctx context.Context, c *verification.AuthCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c == nil {
		return errors.New("auth code cannot be nil")
	}

	if r.saveErr != nil {
		return r.saveErr
	}

	r.dbbyUserID[c.UserID()] = append(r.dbbyUserID[c.UserID()], c)

	r.appendEvents(c.Uncommitted()...)

	return nil
}

func (r *CodeRepo) GetLatestCodeByUserID(ctx context.Context, userID user.ID) (*verification.AuthCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	codes := r.dbbyUserID[userID]
	if len(codes) == 0 {
		return nil, errorx.NewNoCodeIssued()
	}

	return codes[len(codes)-1], nil
}

func (r *CodeRepo) FailSaveWith(err error) *CodeRepo {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.saveErr = err
	return r
}

func (r *CodeRepo) SeedCode(t *testing.T, c *verification.AuthCode) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.dbbyUserID[c.UserID()] = append(r.dbbyUserID[c.UserID()], c)
}

func (r *CodeRepo) CodeCount(userID user.ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.dbbyUserID[userID])
}

func (r *CodeRepo) LatestCode(t *testing.T, userID user.ID) *verification.AuthCode {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	codes := r.dbbyUserID[userID]
	if len(codes) == 0 {
		t.Fatalf("expected at least one code for user %s", userID)
	}

	return codes[len(codes)-1]
}
