package notify

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("verigate/internal/adapters/notify")
	logger = otelslog.NewLogger("verigate/internal/adapters/notify")
)
