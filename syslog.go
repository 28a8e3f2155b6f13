package quill

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SyslogSink ships formatted records to a syslog daemon over a unix
// socket, UDP, or TCP. Records are framed RFC3164-style:
// <priority>timestamp hostname tag: message.
type SyslogSink struct {
	network  string
	address  string
	tag      string
	priority int
	conn     net.Conn
	writer   *bufio.Writer
}

// NewSyslogSink creates an unlocked syslog sink. Supported address
// forms:
//
//   - /dev/log (unix socket)
//   - syslog://host:port (UDP)
//   - syslog+tcp://host:port (TCP)
//   - host:port or bare host (UDP, default port 514)
func NewSyslogSink(address, tag string) (*SyslogSink, error) {
	network, addr, err := parseSyslogAddress(address)
	if err != nil {
		return nil, err
	}

	conn, err := net.Dial(network, addr)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to syslog server")
	}

	if tag == "" {
		tag = "quill"
	}

	return &SyslogSink{
		network:  network,
		address:  addr,
		tag:      tag,
		priority: defaultSyslogPriority,
		conn:     conn,
		writer:   bufio.NewWriterSize(conn, defaultBufferSize),
	}, nil
}

// NewSyslogSinkMT creates a syslog sink that is safe to share across
// goroutines.
func NewSyslogSinkMT(address, tag string) (Sink, error) {
	s, err := NewSyslogSink(address, tag)
	if err != nil {
		return nil, err
	}
	return NewLockedSink(s), nil
}

func parseSyslogAddress(address string) (network, addr string, err error) {
	switch {
	case strings.HasPrefix(address, "/"):
		return "unix", address, nil
	case strings.HasPrefix(address, "syslog+tcp://"):
		network, addr = "tcp", strings.TrimPrefix(address, "syslog+tcp://")
	case strings.HasPrefix(address, "syslog://"):
		network, addr = "udp", strings.TrimPrefix(address, "syslog://")
	case strings.Contains(address, "://"):
		return "", "", errors.Errorf("invalid syslog address format: %s", address)
	default:
		network, addr = "udp", address
	}

	if addr == "" {
		return "", "", errors.Errorf("invalid syslog address format: %s", address)
	}
	if !strings.Contains(addr, ":") {
		addr = addr + ":" + defaultSyslogPort
	}
	return network, addr, nil
}

// SetPriority sets the syslog priority value (facility*8 + severity)
// attached to every record.
func (s *SyslogSink) SetPriority(priority int) error {
	if priority < 0 || priority > 191 {
		return errors.Errorf("invalid syslog priority: %d", priority)
	}
	s.priority = priority
	return nil
}

// Consume frames one record and writes it to the syslog connection. A
// failed write triggers a single reconnect attempt before giving up.
func (s *SyslogSink) Consume(p []byte) error {
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "localhost"
	}

	content := bytes.TrimRight(p, "\n")
	framed := fmt.Sprintf("<%d>%s %s %s: %s\n",
		s.priority,
		time.Now().Format(time.RFC3339),
		hostname,
		s.tag,
		content)

	if _, err := s.writer.WriteString(framed); err == nil {
		return errors.Wrap(s.writer.Flush(), "flushing syslog writer")
	}

	if err := s.reconnect(); err != nil {
		return err
	}
	if _, err := s.writer.WriteString(framed); err != nil {
		return errors.Wrap(err, "writing to syslog")
	}
	return errors.Wrap(s.writer.Flush(), "flushing syslog writer")
}

// Flush pushes buffered records through to the connection.
func (s *SyslogSink) Flush() error {
	return errors.Wrap(s.writer.Flush(), "flushing syslog writer")
}

// Close closes the syslog connection.
func (s *SyslogSink) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return errors.Wrap(err, "closing syslog connection")
}

// reconnect re-dials the syslog server after a failed write.
func (s *SyslogSink) reconnect() error {
	if s.conn != nil {
		s.conn.Close()
	}

	conn, err := net.Dial(s.network, s.address)
	if err != nil {
		return errors.Wrap(err, "reconnecting to syslog server")
	}

	s.conn = conn
	s.writer = bufio.NewWriterSize(conn, defaultBufferSize)
	return nil
}
