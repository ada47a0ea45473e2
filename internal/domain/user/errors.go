package user

import "gitlab.com/verigate/verigate-backend/pkg/errorx"

var ErrAlreadyVerified = errorx.NewAlreadyVerified()

var ErrNotFound = errorx.NewResourceNotFound("user")
