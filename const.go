package quill

const (
	defaultBufferSize = 4096
	defaultQueueSize  = 8192

	// defaultPattern mirrors the builtin layout: timestamp, logger name,
	// level name, message body.
	defaultPattern = "[%Y-%m-%d %H:%M:%S.%e] [%n] [%l] %v"

	// defaultSyslogPriority is notice severity in the user facility
	// (1*8 + 5).
	defaultSyslogPriority = 13

	defaultSyslogPort = "514"
)
