package listener

import (
	"context"
	"net"
	"sync"

	"github.com/kak-tus/syslog-receiver/config"
	"github.com/kak-tus/syslog-receiver/message"
	"go.uber.org/zap"
)

// Consumer receives parsed messages. OnMessage is called synchronously on
// the goroutine of the listener or connection handler that produced the
// message; a slow consumer slows that goroutine.
type Consumer interface {
	OnMessage(source net.Addr, msg message.Message) error
}

type state int

const (
	stateNotStarted state = iota
	stateRunning
	stateStopped
)

// Listener holds listener object
type Listener struct {
	logger   *zap.SugaredLogger
	config   config.ListenerConfig
	consumer Consumer

	ctx    context.Context
	cancel context.CancelFunc

	m       sync.Mutex
	state   state
	udpConn net.PacketConn
	tcpLn   net.Listener

	wg        sync.WaitGroup
	closeOnce sync.Once
}
