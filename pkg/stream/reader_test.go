package stream_test

import (
	"bytes"
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ladlehq/ladle/pkg/stream"
)

// chunkedReader yields at most size bytes per Read so tests can exercise
// arbitrary transport chunk boundaries.
type chunkedReader struct {
	data []byte
	size int
	off  int
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if c.off >= len(c.data) {
		return 0, io.EOF
	}
	n := c.size
	if n > len(p) {
		n = len(p)
	}
	if c.off+n > len(c.data) {
		n = len(c.data) - c.off
	}
	copy(p, c.data[c.off:c.off+n])
	c.off += n
	return n, nil
}

func drain(r *stream.Reader) []stream.Event {
	var events []stream.Event
	for {
		ev, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		if ev == nil {
			return events
		}
		events = append(events, *ev)
	}
}

var _ = Describe("Reader", func() {
	Describe("Next", func() {
		Context("with well-formed frames", func() {
			It("parses a single content frame", func() {
				src := strings.NewReader("data: {\"type\":\"content\",\"content\":\"hello\"}\n")
				r := stream.NewReader(src)

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Type).To(Equal(stream.EventContent))
				Expect(ev.Content).To(Equal("hello"))

				ev, err = r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev).To(BeNil())
			})

			It("parses a full start/content/end sequence", func() {
				input := "data: {\"type\":\"start\",\"model\":\"gpt-3.5-turbo\"}\n\n" +
					"data: {\"type\":\"content\",\"content\":\"A\"}\n\n" +
					"data: {\"type\":\"content\",\"content\":\"B\"}\n\n" +
					"data: {\"type\":\"end\",\"full_response\":\"AB\",\"model_used\":\"m1\"}\n\n"
				r := stream.NewReader(strings.NewReader(input))

				events := drain(r)
				Expect(events).To(HaveLen(4))
				Expect(events[0].Type).To(Equal(stream.EventStart))
				Expect(events[0].Model).To(Equal("gpt-3.5-turbo"))
				Expect(events[1].Content).To(Equal("A"))
				Expect(events[2].Content).To(Equal("B"))
				Expect(events[3].Type).To(Equal(stream.EventEnd))
				Expect(events[3].FullResponse).To(Equal("AB"))
				Expect(events[3].ModelUsed).To(Equal("m1"))
			})

			It("parses an error frame", func() {
				src := strings.NewReader("data: {\"type\":\"error\",\"error\":\"rate limited\"}\n")
				r := stream.NewReader(src)

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Type).To(Equal(stream.EventError))
				Expect(ev.Error).To(Equal("rate limited"))
			})

			It("handles a data prefix with no space after the colon", func() {
				src := strings.NewReader("data:{\"type\":\"content\",\"content\":\"x\"}\n")
				r := stream.NewReader(src)

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Content).To(Equal("x"))
			})

			It("handles CRLF line endings", func() {
				src := strings.NewReader("data: {\"type\":\"content\",\"content\":\"x\"}\r\n\r\n")
				r := stream.NewReader(src)

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev.Content).To(Equal("x"))
			})
		})

		Context("with non-frame lines", func() {
			It("ignores blank lines and comments", func() {
				input := "\n: keep-alive\n\ndata: {\"type\":\"content\",\"content\":\"x\"}\n\n"
				r := stream.NewReader(strings.NewReader(input))

				events := drain(r)
				Expect(events).To(HaveLen(1))
				Expect(events[0].Content).To(Equal("x"))
			})

			It("ignores lines without the data prefix", func() {
				input := "event: something\nretry: 3000\ndata: {\"type\":\"content\",\"content\":\"x\"}\n"
				r := stream.NewReader(strings.NewReader(input))

				events := drain(r)
				Expect(events).To(HaveLen(1))
			})

			It("ignores a data line with an empty payload", func() {
				input := "data:\ndata: \ndata: {\"type\":\"content\",\"content\":\"x\"}\n"
				r := stream.NewReader(strings.NewReader(input))

				events := drain(r)
				Expect(events).To(HaveLen(1))
			})
		})

		Context("with malformed frames", func() {
			It("skips invalid JSON and continues with later frames", func() {
				input := "data: {not json}\n" +
					"data: {\"type\":\"content\",\"content\":\"still here\"}\n"
				r := stream.NewReader(strings.NewReader(input))

				events := drain(r)
				Expect(events).To(HaveLen(1))
				Expect(events[0].Content).To(Equal("still here"))
			})

			It("skips a truncated frame without aborting", func() {
				input := "data: {\"type\":\"content\",\"content\":\"lost\n" +
					"data: {\"type\":\"end\",\"full_response\":\"ok\"}\n"
				r := stream.NewReader(strings.NewReader(input))

				events := drain(r)
				Expect(events).To(HaveLen(1))
				Expect(events[0].Type).To(Equal(stream.EventEnd))
			})
		})

		Context("at end of stream", func() {
			It("returns nil on empty input", func() {
				r := stream.NewReader(strings.NewReader(""))

				ev, err := r.Next()
				Expect(err).NotTo(HaveOccurred())
				Expect(ev).To(BeNil())
			})

			It("discards an unterminated trailing line", func() {
				// Without a newline the final fragment can never be a
				// complete frame, even if it happens to parse.
				input := "data: {\"type\":\"content\",\"content\":\"a\"}\n" +
					"data: {\"type\":\"end\",\"full_response\":\"a\"}"
				r := stream.NewReader(strings.NewReader(input))

				events := drain(r)
				Expect(events).To(HaveLen(1))
				Expect(events[0].Type).To(Equal(stream.EventContent))
			})
		})

		Context("with arbitrary chunk boundaries", func() {
			// Multi-byte content ensures splits can land inside a UTF-8
			// sequence; the frames also get split inside the data marker.
			input := "data: {\"type\":\"start\",\"model\":\"m\"}\n\n" +
				"data: {\"type\":\"content\",\"content\":\"héllo \"}\n\n" +
				"data: {\"type\":\"content\",\"content\":\"世界\"}\n\n" +
				"data: {\"type\":\"end\",\"full_response\":\"héllo 世界\",\"model_used\":\"m\"}\n\n"

			It("yields the same events regardless of chunk size", func() {
				whole := drain(stream.NewReader(strings.NewReader(input)))
				Expect(whole).To(HaveLen(4))

				for size := 1; size <= 7; size++ {
					chunked := drain(stream.NewReader(&chunkedReader{
						data: []byte(input),
						size: size,
					}))
					Expect(chunked).To(Equal(whole), "chunk size %d", size)
				}
			})
		})
	})

	Describe("NewTeeReader", func() {
		It("forwards decoded lines verbatim while parsing", func() {
			input := ": comment\ndata: {\"type\":\"content\",\"content\":\"x\"}\n\n"
			var dst bytes.Buffer
			r := stream.NewTeeReader(strings.NewReader(input), &dst)

			events := drain(r)
			Expect(events).To(HaveLen(1))
			Expect(dst.String()).To(Equal(input))
		})
	})
})
