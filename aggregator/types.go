package aggregator

import (
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/kak-tus/syslog-receiver/clickhouse"
	"github.com/kak-tus/syslog-receiver/config"
	"github.com/kak-tus/syslog-receiver/message"
	"go.uber.org/zap"
)

// Aggregator object
type Aggregator struct {
	logger  *zap.SugaredLogger
	db      *clickhouse.DB
	decoder jsoniter.API
	config  config.AggregatorConfig
	C       chan message.Message
	m       *sync.Mutex
}

type requestAgg struct {
	partition string
	args      []interface{}
}

const insertSQL = "INSERT INTO logs.syslog%s" +
	" (date,timestamp,host,protocol,facility,level,header,msg," +
	"`string_fields.names`,`string_fields.values`," +
	"`number_fields.names`,`number_fields.values`," +
	"`boolean_fields.names`,`boolean_fields.values`," +
	"`null_fields.names`) " +
	"VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);"
