package gdb

import (
	"strings"
)

// recordType classifies one line of GDB/MI output.
type recordType int

const (
	// resultRecord is a "^class,..." reply to a submitted command.
	resultRecord recordType = iota
	// asyncRecord is an unsolicited "*", "=" or "+" state-change notice.
	asyncRecord
	// streamRecord is "~", "@" or "&" textual output.
	streamRecord
	// promptRecord is the "(gdb)" terminator after a reply.
	promptRecord
)

// Stream record classes.
const (
	streamConsole = "console"
	streamTarget  = "target"
	streamLog     = "log"
)

// record is one parsed line of GDB/MI output.
type record struct {
	// Token is the request token echoed on result records, empty otherwise.
	Token string
	Type  recordType
	// Class is the result class (done, running, error, ...), the async
	// class, or the stream kind.
	Class string
	// Payload is the raw results text after the class for result and async
	// records, or the decoded text for stream records.
	Payload string
}

// parseRecord parses one line of MI output. It returns false for lines that
// are not MI records (GDB occasionally writes raw text around them).
func parseRecord(line string) (record, bool) {
	line = strings.TrimRight(line, "\r\n")

	if line == "(gdb)" || line == "(gdb) " {
		return record{Type: promptRecord}, true
	}
	if line == "" {
		return record{}, false
	}

	// Optional numeric token prefix.
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	token := line[:i]
	rest := line[i:]
	if rest == "" {
		return record{}, false
	}

	switch rest[0] {
	case '^':
		class, payload := splitClass(rest[1:])
		return record{Token: token, Type: resultRecord, Class: class, Payload: payload}, true
	case '*', '=', '+':
		class, payload := splitClass(rest[1:])
		return record{Token: token, Type: asyncRecord, Class: class, Payload: payload}, true
	case '~', '@', '&':
		text, ok := unquoteMI(rest[1:])
		if !ok {
			return record{}, false
		}
		class := streamConsole
		switch rest[0] {
		case '@':
			class = streamTarget
		case '&':
			class = streamLog
		}
		return record{Type: streamRecord, Class: class, Payload: text}, true
	}

	return record{}, false
}

// splitClass splits "class,results" into its parts.
func splitClass(s string) (string, string) {
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// resultMessage extracts the msg="..." field from an ^error payload.
// It returns the empty string when no message is present.
func resultMessage(payload string) string {
	i := strings.Index(payload, `msg=`)
	if i < 0 {
		return ""
	}
	text, ok := unquoteMI(payload[i+len(`msg=`):])
	if !ok {
		return ""
	}
	return text
}

// unquoteMI decodes an MI c-string, stopping at its closing quote.
// Trailing content after the closing quote is ignored, which lets it pull a
// single field out of a larger results tuple.
func unquoteMI(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' {
		return "", false
	}
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			return b.String(), true
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", false
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\', '"':
			b.WriteByte(s[i])
		default:
			// Unknown escape, keep it verbatim.
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return "", false
}

// quoteMI encodes s as an MI c-string argument.
func quoteMI(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
