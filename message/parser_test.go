package message

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValid(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		priority int
		header   string
		body     string
	}{
		{
			name:     "classic",
			raw:      "<34>Oct 11 22:14:15 myhost su: failure",
			priority: 34,
			header:   "Oct 11 22:14:15",
			body:     "myhost su: failure",
		},
		{
			name:     "empty body",
			raw:      "<0>a b c ",
			priority: 0,
			header:   "a b c",
			body:     "",
		},
		{
			name:     "leading zeroes in priority",
			raw:      "<007>a b c x",
			priority: 7,
			header:   "a b c",
			body:     "x",
		},
		{
			name:     "body keeps spaces",
			raw:      "<13>Jan 1 00:00:00 host test",
			priority: 13,
			header:   "Jan 1 00:00:00",
			body:     "host test",
		},
		{
			name:     "header tokens are opaque",
			raw:      "<165>not a timestamp at-all",
			priority: 165,
			header:   "not a timestamp",
			body:     "at-all",
		},
	}

	source := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 5514}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := Parse(UDP, source, tc.raw)
			require.NoError(t, err)

			assert.Equal(t, UDP, msg.Protocol)
			assert.Equal(t, source, msg.Source)
			assert.Equal(t, tc.priority, msg.Priority)
			assert.Equal(t, tc.header, msg.Header)
			assert.Equal(t, tc.body, msg.Body)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "no pri marker", raw: "garbage no pri marker"},
		{name: "empty", raw: ""},
		{name: "empty pri", raw: "<>a b c x"},
		{name: "non-digit pri", raw: "<3a4>a b c x"},
		{name: "missing open bracket", raw: "34>a b c x"},
		{name: "two header tokens", raw: "<34>a b x"},
		{name: "no space after header", raw: "<34>a b c"},
		{name: "newline in body", raw: "<34>a b c d\ne"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(TCP, nil, tc.raw)
			require.Error(t, err)

			var unparsable *UnparsableError
			require.True(t, errors.As(err, &unparsable))
			assert.Equal(t, TCP, unparsable.Protocol)
			assert.Equal(t, tc.raw, unparsable.Raw)
		})
	}
}
