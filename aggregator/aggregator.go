package aggregator

import (
	"fmt"
	"net"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/kak-tus/syslog-receiver/clickhouse"
	"github.com/kak-tus/syslog-receiver/config"
	"github.com/kak-tus/syslog-receiver/message"
	"go.uber.org/zap"
)

// NewAggregator returns new aggregator object
func NewAggregator(cnf *config.Config, log *zap.SugaredLogger) (*Aggregator, error) {
	db, err := clickhouse.NewDB(cnf.Clickhouse, log)
	if err != nil {
		return nil, err
	}

	a := &Aggregator{
		logger:  log,
		db:      db,
		decoder: jsoniter.Config{UseNumber: true}.Froze(),
		config:  cnf.Aggregator,
		C:       make(chan message.Message, 100000),
		m:       &sync.Mutex{},
	}

	a.logger.Info("Inited aggregator")

	return a, nil
}

// OnMessage implements the listener consumer contract. It blocks when the
// queue is full, which backpressures the listener.
func (a *Aggregator) OnMessage(source net.Addr, msg message.Message) error {
	a.C <- msg
	return nil
}

// Start aggregation
func (a *Aggregator) Start() {
	go func() {
		a.m.Lock()
		a.aggregate()
		a.m.Unlock()
	}()

	go a.db.CreatePartitions(a.config.PartitionFormat)
}

// Stop drains the queue and stops the DB
func (a *Aggregator) Stop() {
	a.logger.Info("Stop aggregator")

	close(a.C)
	a.m.Lock()

	a.db.Stop()

	a.logger.Info("Stopped aggregator")
}

func (a *Aggregator) aggregate() {
	period := a.config.Period
	if period <= 0 {
		period = 60
	}

	batch := a.config.Batch
	if batch <= 0 {
		batch = 10000
	}

	vals := make([]requestAgg, batch)
	count := 0

	start := time.Now()

	for {
		msg, more := <-a.C

		if more {
			vals[count] = a.convert(msg)
			count++
		}

		if count >= batch || time.Since(start).Seconds() >= float64(period) || !more {
			a.send(vals[0:count])
			a.logger.Info(fmt.Sprintf("Sended %d values", count))
			count = 0
			start = time.Now()
		}

		if !more {
			a.logger.Info("No more messages")
			break
		}
	}
}

func (a *Aggregator) convert(msg message.Message) requestAgg {
	var res requestAgg

	dt := time.Now().In(time.UTC)

	res.partition = dt.Format(a.config.PartitionFormat)

	args := []interface{}{
		dt.Format("2006-01-02"),
		dt.Format("2006-01-02 15:04:05"),
		hostFrom(msg.Source),
		string(msg.Protocol),
		facilities[msg.Priority>>3],
		levels[msg.Priority&7],
		msg.Header,
	}

	args = append(args, a.parse(msg.Body)...)

	res.args = args

	return res
}

func (a *Aggregator) send(vals []requestAgg) {
	byPartition := make(map[string][][]interface{})

	for i := 0; i < len(vals); i++ {
		sql := fmt.Sprintf(insertSQL, vals[i].partition)
		byPartition[sql] = append(byPartition[sql], vals[i].args)
	}

	errors := a.db.Send(byPartition)
	if errors != nil {
		for _, err := range errors {
			a.logger.Error(err)
		}
	}
}

func hostFrom(addr net.Addr) string {
	if addr == nil {
		return ""
	}

	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}

	return host
}
