package quill

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestParseSyslogAddress(t *testing.T) {
	cases := []struct {
		in          string
		wantNetwork string
		wantAddr    string
		wantErr     bool
	}{
		{"/dev/log", "unix", "/dev/log", false},
		{"syslog://localhost:5514", "udp", "localhost:5514", false},
		{"syslog://localhost", "udp", "localhost:514", false},
		{"syslog+tcp://localhost:5514", "tcp", "localhost:5514", false},
		{"localhost:5514", "udp", "localhost:5514", false},
		{"localhost", "udp", "localhost:514", false},
		{"ftp://nope", "", "", true},
		{"syslog://", "", "", true},
	}

	for _, tc := range cases {
		network, addr, err := parseSyslogAddress(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if network != tc.wantNetwork || addr != tc.wantAddr {
			t.Errorf("%q: got %s/%s, want %s/%s", tc.in, network, addr, tc.wantNetwork, tc.wantAddr)
		}
	}
}

func TestSyslogSinkFraming(t *testing.T) {
	// Local UDP listener standing in for a syslog daemon.
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	defer conn.Close()

	sink, err := NewSyslogSink("syslog://"+conn.LocalAddr().String(), "quilltest")
	if err != nil {
		t.Fatalf("creating sink: %v", err)
	}
	defer sink.Close()

	if err := sink.Consume([]byte("engine started\n")); err != nil {
		t.Fatalf("consume: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1024)
	n, _, err := conn.ReadFrom(buf)
	if err != nil {
		t.Fatalf("reading datagram: %v", err)
	}
	got := string(buf[:n])

	if !strings.HasPrefix(got, "<13>") {
		t.Errorf("missing priority prefix: %q", got)
	}
	if !strings.Contains(got, "quilltest: engine started") {
		t.Errorf("missing tag or body: %q", got)
	}
	if strings.Contains(strings.TrimSuffix(got, "\n"), "\n") {
		t.Errorf("interior newline in framed message: %q", got)
	}
}

func TestSyslogSinkPriority(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	defer conn.Close()

	sink, err := NewSyslogSink(conn.LocalAddr().String(), "")
	if err != nil {
		t.Fatalf("creating sink: %v", err)
	}
	defer sink.Close()

	if err := sink.SetPriority(200); err == nil {
		t.Error("out-of-range priority accepted")
	}
	if err := sink.SetPriority(-1); err == nil {
		t.Error("negative priority accepted")
	}
	if err := sink.SetPriority(30); err != nil {
		t.Fatalf("valid priority rejected: %v", err)
	}

	sink.Consume([]byte("check\n"))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1024)
	n, _, err := conn.ReadFrom(buf)
	if err != nil {
		t.Fatalf("reading datagram: %v", err)
	}
	if !strings.HasPrefix(string(buf[:n]), "<30>") {
		t.Errorf("priority not applied: %q", buf[:n])
	}
}

func TestSyslogSinkConnectFailure(t *testing.T) {
	// TCP dial to a closed port must fail at construction.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listening: %v", err)
	}
	addr := l.Addr().String()
	l.Close()

	if _, err := NewSyslogSink("syslog+tcp://"+addr, "t"); err == nil {
		t.Error("dial to closed port succeeded")
	}
}
