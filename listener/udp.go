package listener

import (
	"errors"
	"net"

	"github.com/kak-tus/syslog-receiver/message"
)

const udpBufferSize = 64 * 1024

// listenUDP receives datagrams until the shared context is cancelled. One
// datagram is one candidate message. Read errors are logged and the loop
// continues; Stop unblocks the read by closing the socket.
func (l *Listener) listenUDP(conn net.PacketConn) {
	defer l.wg.Done()
	defer conn.Close()

	buf := make([]byte, udpBufferSize)

	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			select {
			case <-l.ctx.Done():
				l.logger.Info("UDP listener exited")
				return
			default:
			}

			if errors.Is(err, net.ErrClosed) {
				return
			}

			l.logger.Warnw("UDP read failed", "error", err)
			continue
		}

		l.handle(message.UDP, addr, string(buf[:n]))
	}
}
