package listener

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/kak-tus/syslog-receiver/message"
)

const tcpChunkSize = 1024

// listenTCP accepts connections until the shared context is cancelled and
// runs one handler goroutine per connection. Stop unblocks Accept by
// closing the listening socket; live handlers keep running and observe the
// cancellation on their own.
func (l *Listener) listenTCP(ln net.Listener) {
	defer l.wg.Done()
	defer ln.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-l.ctx.Done():
				l.logger.Info("TCP listener exited")
				return
			default:
			}

			if errors.Is(err, net.ErrClosed) {
				return
			}

			l.logger.Warnw("TCP accept failed", "error", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}

		l.wg.Add(1)
		go l.handleConn(conn)
	}
}

// handleConn reads one connection in fixed-size chunks. Each chunk is one
// candidate message; a split message is not reassembled. The connection is
// closed on every exit path and when the shared context is cancelled.
func (l *Listener) handleConn(conn net.Conn) {
	defer l.wg.Done()
	defer conn.Close()

	source := conn.RemoteAddr()

	l.logger.Debugw("Connection opened", "remote", source.String())
	defer l.logger.Debugw("Connection closed", "remote", source.String())

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-l.ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	buf := make([]byte, tcpChunkSize)

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			l.handle(message.TCP, source, string(buf[:n]))
		}

		if err != nil {
			if err == io.EOF || l.ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}

			l.logger.Warnw("Connection read failed", "remote", source.String(), "error", err)
			return
		}
	}
}
