package mocks

import (
	"context"
	"fmt"
	"sync"

	"gitlab.com/verigate/verigate-backend/internal/domain/user"
)

type TokenIssuer struct {
	issueErr error
	issued   []user.ID
	mu       sync.Mutex
}

func NewTokenIssuer() *TokenIssuer {
	return &TokenIssuer{}
}

func (i *TokenIssuer) Issue(ctx context.Context, u *user.User) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.issueErr != nil {
		return "", i.issueErr
	}

	i.issued = append(i.issued, u.ID())
	return fmt.Sprintf("token-%s", u.ID()), nil
}

func (i *TokenIssuer) FailWith(err error) *TokenIssuer {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.issueErr = err
	return i
}

func (i *TokenIssuer) IssuedFor() []user.ID {
	i.mu.Lock()
	defer i.mu.Unlock()

	idsCopy := make([]user.ID, len(i.issued))
	copy(idsCopy, i.issued)
	return idsCopy
}
