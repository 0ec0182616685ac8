package clickhouse

import (
	"database/sql"

	"go.uber.org/zap"
)

// DB holds database connection object
type DB struct {
	logger *zap.SugaredLogger
	DB     *sql.DB
	stop   chan struct{}
}
