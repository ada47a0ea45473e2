package postgres

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("verigate/internal/adapters/repos/postgres")
	logger = otelslog.NewLogger("verigate/internal/adapters/repos/postgres")
)
