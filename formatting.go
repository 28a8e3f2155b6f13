package quill

import (
	"fmt"
	"strconv"
	"time"
)

// Formatter renders a log message plus its metadata into output bytes.
// Implementations must be safe for concurrent use; a formatter may be
// shared by every logger in the process.
type Formatter interface {
	Format(m *Message) []byte
}

// Body renders the message text, applying the captured format arguments
// if any were supplied.
func (m *Message) Body() string {
	if len(m.Args) == 0 {
		return m.Format
	}
	return fmt.Sprintf(m.Format, m.Args...)
}

// formatStep appends one compiled pattern fragment to buf.
type formatStep func(buf []byte, m *Message, body string, t time.Time) []byte

// PatternFormatter renders messages according to a pattern string. The
// pattern is compiled once at construction into a sequence of appenders,
// so rendering a record does no parsing.
//
// Recognized placeholders:
//
//	%v  message body       %l  level name      %L  level short name
//	%n  logger name        %Y  year            %m  month
//	%d  day                %H  hour            %M  minute
//	%S  second             %e  millisecond     %%  literal percent
//
// Unrecognized placeholders are emitted literally. Every record is
// terminated with a newline.
type PatternFormatter struct {
	pattern string
	steps   []formatStep
}

// NewPatternFormatter compiles a pattern into a formatter.
func NewPatternFormatter(pattern string) *PatternFormatter {
	f := &PatternFormatter{pattern: pattern}
	f.compile()
	return f
}

// defaultFormatter renders the builtin pattern.
func defaultFormatter() *PatternFormatter {
	return NewPatternFormatter(defaultPattern)
}

// Pattern returns the pattern this formatter was compiled from.
func (f *PatternFormatter) Pattern() string {
	return f.pattern
}

// Format renders one record.
func (f *PatternFormatter) Format(m *Message) []byte {
	buf := make([]byte, 0, 128)
	body := m.Body()
	for _, step := range f.steps {
		buf = step(buf, m, body, m.Timestamp)
	}
	return append(buf, '\n')
}

func (f *PatternFormatter) compile() {
	pattern := f.pattern
	literal := make([]byte, 0, len(pattern))

	flushLiteral := func() {
		if len(literal) == 0 {
			return
		}
		lit := string(literal)
		literal = literal[:0]
		f.steps = append(f.steps, func(buf []byte, _ *Message, _ string, _ time.Time) []byte {
			return append(buf, lit...)
		})
	}

	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 == len(pattern) {
			literal = append(literal, pattern[i])
			continue
		}

		i++
		step := compileFlag(pattern[i])
		if step == nil {
			literal = append(literal, '%', pattern[i])
			continue
		}
		flushLiteral()
		f.steps = append(f.steps, step)
	}
	flushLiteral()
}

func compileFlag(flag byte) formatStep {
	switch flag {
	case 'v':
		return func(buf []byte, _ *Message, body string, _ time.Time) []byte {
			return append(buf, body...)
		}
	case 'l':
		return func(buf []byte, m *Message, _ string, _ time.Time) []byte {
			return append(buf, m.Level.String()...)
		}
	case 'L':
		return func(buf []byte, m *Message, _ string, _ time.Time) []byte {
			return append(buf, m.Level.ShortString()...)
		}
	case 'n':
		return func(buf []byte, m *Message, _ string, _ time.Time) []byte {
			return append(buf, m.Name...)
		}
	case 'Y':
		return func(buf []byte, _ *Message, _ string, t time.Time) []byte {
			return strconv.AppendInt(buf, int64(t.Year()), 10)
		}
	case 'm':
		return func(buf []byte, _ *Message, _ string, t time.Time) []byte {
			return appendPadded(buf, int(t.Month()), 2)
		}
	case 'd':
		return func(buf []byte, _ *Message, _ string, t time.Time) []byte {
			return appendPadded(buf, t.Day(), 2)
		}
	case 'H':
		return func(buf []byte, _ *Message, _ string, t time.Time) []byte {
			return appendPadded(buf, t.Hour(), 2)
		}
	case 'M':
		return func(buf []byte, _ *Message, _ string, t time.Time) []byte {
			return appendPadded(buf, t.Minute(), 2)
		}
	case 'S':
		return func(buf []byte, _ *Message, _ string, t time.Time) []byte {
			return appendPadded(buf, t.Second(), 2)
		}
	case 'e':
		return func(buf []byte, _ *Message, _ string, t time.Time) []byte {
			return appendPadded(buf, t.Nanosecond()/int(time.Millisecond), 3)
		}
	case '%':
		return func(buf []byte, _ *Message, _ string, _ time.Time) []byte {
			return append(buf, '%')
		}
	default:
		return nil
	}
}

func appendPadded(buf []byte, v, width int) []byte {
	digits := 1
	for n := v; n >= 10; n /= 10 {
		digits++
	}
	for ; digits < width; digits++ {
		buf = append(buf, '0')
	}
	return strconv.AppendInt(buf, int64(v), 10)
}
