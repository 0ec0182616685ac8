package aggregator

import (
	"net"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/kak-tus/syslog-receiver/config"
	"github.com/kak-tus/syslog-receiver/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAggregator() *Aggregator {
	return &Aggregator{
		logger:  zap.NewNop().Sugar(),
		decoder: jsoniter.Config{UseNumber: true}.Froze(),
		config:  config.AggregatorConfig{PartitionFormat: "2006010215"},
		C:       make(chan message.Message, 10),
		m:       &sync.Mutex{},
	}
}

func TestConvert(t *testing.T) {
	a := newTestAggregator()

	msg := message.Message{
		Protocol: message.UDP,
		Source:   &net.UDPAddr{IP: net.ParseIP("192.0.2.7"), Port: 40000},
		Priority: 34,
		Header:   "Oct 11 22:14:15",
		Body:     "myhost su: failure",
	}

	res := a.convert(msg)

	assert.Equal(t, time.Now().UTC().Format("2006010215"), res.partition)
	require.True(t, len(res.args) >= 8)

	assert.Equal(t, "192.0.2.7", res.args[2])
	assert.Equal(t, "UDP", res.args[3])
	// 34 = facility 4 (auth), severity 2
	assert.Equal(t, "auth", res.args[4])
	assert.Equal(t, "FATAL", res.args[5])
	assert.Equal(t, "Oct 11 22:14:15", res.args[6])
	assert.Equal(t, "myhost su: failure", res.args[7])
}

func TestConvertSeverities(t *testing.T) {
	a := newTestAggregator()

	cases := map[int]string{
		0:  "FATAL",
		11: "ERROR",
		12: "WARN",
		14: "INFO",
		15: "DEBUG",
	}

	for priority, level := range cases {
		res := a.convert(message.Message{Protocol: message.TCP, Priority: priority, Body: "x"})
		assert.Equal(t, level, res.args[5], "priority %d", priority)
	}
}

func TestParsePlainBody(t *testing.T) {
	a := newTestAggregator()

	parsed := a.parse("plain text message")

	require.Len(t, parsed, 8)
	assert.Equal(t, "plain text message", parsed[0])
}

func TestParseJSONBody(t *testing.T) {
	a := newTestAggregator()

	parsed := a.parse(`{"tag":"app","count":5,"ok":true,"gone":null}`)

	require.Len(t, parsed, 8)
	// JSON body is fully converted to structured fields
	assert.Equal(t, "", parsed[0])
}

func TestParseBrokenJSONBody(t *testing.T) {
	a := newTestAggregator()

	parsed := a.parse(`{"tag":"app"`)

	require.Len(t, parsed, 8)
	assert.Equal(t, `{"tag":"app"`, parsed[0])
}

func TestHostFrom(t *testing.T) {
	assert.Equal(t, "", hostFrom(nil))
	assert.Equal(t, "192.0.2.7", hostFrom(&net.UDPAddr{IP: net.ParseIP("192.0.2.7"), Port: 514}))
	assert.Equal(t, "192.0.2.8", hostFrom(&net.TCPAddr{IP: net.ParseIP("192.0.2.8"), Port: 601}))
}
