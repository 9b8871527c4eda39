package postgres

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("tms/internal/adapters/repos/postgres")
	logger = otelslog.NewLogger("tms/internal/adapters/repos/postgres")
)
