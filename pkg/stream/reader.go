package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/ladlehq/ladle/pkg/logger"
)

// Reader decodes complete newline-terminated lines from a source io.Reader
// and frames them into Events. The scanner buffers raw bytes internally, so
// chunk boundaries in the underlying transport, including splits inside a
// multi-byte UTF-8 character or inside the "data: " marker, never affect
// the decoded line sequence.
//
// Lines without the "data:" prefix (blank lines, SSE comments, other SSE
// fields) are ignored. A frame whose payload fails JSON parsing is logged
// and skipped; the stream continues.
type Reader struct {
	scanner *bufio.Scanner
	dest    io.Writer
	logger  *slog.Logger
}

// NewReader returns a Reader that frames events from src.
func NewReader(src io.Reader) *Reader {
	return NewTeeReader(src, nil)
}

// NewTeeReader returns a Reader that additionally writes every decoded line
// verbatim (newline reinserted) to dest. Useful for raw stream capture when
// debugging against a live backend.
func NewTeeReader(src io.Reader, dest io.Writer) *Reader {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(scanLines)

	return &Reader{
		scanner: scanner,
		dest:    dest,
		logger:  logger.Nop(),
	}
}

// WithLogger sets the logger used to report malformed frames and returns
// the same Reader for chaining.
func (r *Reader) WithLogger(l *slog.Logger) *Reader {
	r.logger = l
	return r
}

// Next returns the next parsed event from the stream. It blocks until a
// complete "data: <json>" line is available. Next returns nil, nil when
// the source is exhausted; an unterminated trailing fragment at EOF is
// discarded, since it cannot be a complete frame.
func (r *Reader) Next() (*Event, error) {
	for r.scanner.Scan() {
		raw := r.scanner.Text()

		if r.dest != nil {
			// scanLines strips the newline, so reinsert it for the tee.
			if _, err := io.WriteString(r.dest, raw+"\n"); err != nil {
				return nil, err
			}
		}

		payload, ok := strings.CutPrefix(raw, "data:")
		if !ok {
			// Blank lines, comments, and non-data SSE fields are not frames.
			continue
		}

		payload = strings.TrimSpace(payload)
		if payload == "" {
			continue
		}

		var ev Event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			r.logger.Warn("skipping malformed frame",
				"error", err,
				"payload", payload,
			)
			continue
		}

		switch ev.Type {
		case EventStart, EventContent, EventEnd, EventError:
		default:
			// Still returned; the dispatcher drops it without a callback.
			r.logger.Debug("unknown event type", "type", string(ev.Type))
		}

		return &ev, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	return nil, nil
}

// scanLines is a bufio.SplitFunc that yields newline-terminated lines with
// the terminator (and any trailing \r) removed. Unlike bufio.ScanLines it
// does not emit an unterminated final line at EOF.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[:i], []byte("\r")), nil
	}

	if atEOF {
		// A nil final token stops the scan without emitting the fragment.
		return 0, nil, bufio.ErrFinalToken
	}

	return 0, nil, nil
}
