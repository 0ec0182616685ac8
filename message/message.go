package message

import "net"

// Protocol of the transport a message arrived on.
type Protocol string

const (
	// UDP protocol
	UDP Protocol = "UDP"
	// TCP protocol
	TCP Protocol = "TCP"
)

// Message is one parsed syslog line. Values are never modified after Parse.
type Message struct {
	Protocol Protocol
	Source   net.Addr
	Priority int
	Header   string
	Body     string
}
