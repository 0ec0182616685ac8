package listener

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/kak-tus/syslog-receiver/config"
	"github.com/kak-tus/syslog-receiver/message"
	"go.uber.org/zap"
)

var (
	// ErrAlreadyStarted is returned by Start on any instance that already
	// left the not-started state.
	ErrAlreadyStarted = errors.New("listener already started")
	// ErrNoTransports is returned by Start when neither UDP nor TCP port
	// is configured.
	ErrNoTransports = errors.New("no transport port configured")
)

// NewListener returns new listener object
func NewListener(cnf config.ListenerConfig, log *zap.SugaredLogger, cons Consumer) (*Listener, error) {
	if cons == nil {
		return nil, errors.New("nil consumer")
	}

	ctx, cancel := context.WithCancel(context.Background())

	l := &Listener{
		logger:   log,
		config:   cnf,
		consumer: cons,
		ctx:      ctx,
		cancel:   cancel,
	}

	l.logger.Info("Inited listener")

	return l, nil
}

// Start binds the configured transports and launches their loops. A bind
// failure on one transport is logged and does not abort the other.
func (l *Listener) Start() error {
	l.m.Lock()
	defer l.m.Unlock()

	if l.state != stateNotStarted {
		return ErrAlreadyStarted
	}

	if l.config.UDPPort == 0 && l.config.TCPPort == 0 {
		return ErrNoTransports
	}

	if l.config.UDPPort != 0 {
		addr := fmt.Sprintf("%s:%d", l.config.BindAddress, l.config.UDPPort)

		conn, err := net.ListenPacket("udp", addr)
		if err != nil {
			l.logger.Errorw("UDP bind failed", "addr", addr, "error", err)
		} else {
			l.udpConn = conn
			l.wg.Add(1)
			go l.listenUDP(conn)

			l.logger.Infow("Listening UDP", "addr", conn.LocalAddr().String())
		}
	}

	if l.config.TCPPort != 0 {
		addr := fmt.Sprintf("%s:%d", l.config.BindAddress, l.config.TCPPort)

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			l.logger.Errorw("TCP bind failed", "addr", addr, "error", err)
		} else {
			l.tcpLn = ln
			l.wg.Add(1)
			go l.listenTCP(ln)

			l.logger.Infow("Listening TCP", "addr", ln.Addr().String())
		}
	}

	l.state = stateRunning

	return nil
}

// Stop cancels all loops and waits for them to exit. The wait is bounded by
// ctx. Repeated and concurrent calls are no-ops after the first.
func (l *Listener) Stop(ctx context.Context) error {
	l.m.Lock()

	if l.state != stateRunning {
		l.m.Unlock()
		return nil
	}

	l.state = stateStopped

	l.logger.Info("Stop listener")

	l.cancel()

	// Closing the sockets unblocks reads and accepts
	if l.udpConn != nil {
		_ = l.udpConn.Close()
	}
	if l.tcpLn != nil {
		_ = l.tcpLn.Close()
	}

	l.m.Unlock()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	l.logger.Info("Stopped listener")

	return nil
}

// Close releases the cancellation primitive. Idempotent.
func (l *Listener) Close() {
	l.closeOnce.Do(l.cancel)
}

// UDPAddr returns the bound UDP address or nil.
func (l *Listener) UDPAddr() net.Addr {
	l.m.Lock()
	defer l.m.Unlock()

	if l.udpConn == nil {
		return nil
	}

	return l.udpConn.LocalAddr()
}

// TCPAddr returns the bound TCP address or nil.
func (l *Listener) TCPAddr() net.Addr {
	l.m.Lock()
	defer l.m.Unlock()

	if l.tcpLn == nil {
		return nil
	}

	return l.tcpLn.Addr()
}

// handle parses one raw payload and dispatches it. Parse failures are
// logged and dropped.
func (l *Listener) handle(proto message.Protocol, source net.Addr, raw string) {
	msg, err := message.Parse(proto, source, raw)
	if err != nil {
		l.logger.Warnw("Unparsable message", "protocol", proto, "raw", raw)
		return
	}

	l.dispatch(msg)
}

// dispatch delivers one message to the consumer. Consumer errors and panics
// never reach the listener loops.
func (l *Listener) dispatch(msg message.Message) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Errorw("Consumer panicked", "panic", r)
		}
	}()

	if err := l.consumer.OnMessage(msg.Source, msg); err != nil {
		l.logger.Errorw("Consumer failed", "error", err)
	}
}
