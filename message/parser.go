package message

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
)

// PRI in angle brackets, three header tokens, one space, rest of line.
// Header tokens are opaque: no timestamp or hostname validation here.
var pattern = regexp.MustCompile(`^<(\d+)>(\S+) (\S+) (\S+) (.*)$`)

// UnparsableError is returned for input that does not match the syslog
// envelope. It keeps the original text for logging.
type UnparsableError struct {
	Protocol Protocol
	Raw      string
}

func (e *UnparsableError) Error() string {
	return fmt.Sprintf("unparsable %s message: %q", e.Protocol, e.Raw)
}

// Parse converts one raw line to a Message.
func Parse(proto Protocol, source net.Addr, raw string) (Message, error) {
	groups := pattern.FindStringSubmatch(raw)
	if groups == nil {
		return Message{}, &UnparsableError{Protocol: proto, Raw: raw}
	}

	// Only digits matched; Atoi can still reject absurdly long runs
	priority, err := strconv.Atoi(groups[1])
	if err != nil {
		return Message{}, &UnparsableError{Protocol: proto, Raw: raw}
	}

	return Message{
		Protocol: proto,
		Source:   source,
		Priority: priority,
		Header:   groups[2] + " " + groups[3] + " " + groups[4],
		Body:     groups[5],
	}, nil
}
