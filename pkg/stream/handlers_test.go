package stream_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ladlehq/ladle/pkg/stream"
)

var _ = Describe("Handlers", func() {
	Describe("Dispatch", func() {
		It("routes each event type to its single callback", func() {
			var got []string
			h := stream.Handlers{
				OnStart:   func(*stream.Event) { got = append(got, "start") },
				OnContent: func(*stream.Event) { got = append(got, "content") },
				OnEnd:     func(*stream.Event) { got = append(got, "end") },
				OnError:   func(*stream.Event) { got = append(got, "error") },
			}

			h.Dispatch(&stream.Event{Type: stream.EventStart})
			h.Dispatch(&stream.Event{Type: stream.EventContent})
			h.Dispatch(&stream.Event{Type: stream.EventEnd})
			h.Dispatch(&stream.Event{Type: stream.EventError})

			Expect(got).To(Equal([]string{"start", "content", "end", "error"}))
		})

		It("drops events with an unrecognized type", func() {
			fired := false
			h := stream.Handlers{
				OnContent: func(*stream.Event) { fired = true },
				OnError:   func(*stream.Event) { fired = true },
			}

			h.Dispatch(&stream.Event{Type: "ping"})

			Expect(fired).To(BeFalse())
		})

		It("tolerates nil callbacks", func() {
			h := stream.Handlers{}
			Expect(func() {
				h.Dispatch(&stream.Event{Type: stream.EventContent})
			}).NotTo(Panic())
		})
	})

	Describe("Consume", func() {
		It("dispatches until the end event and reports it", func() {
			input := "data: {\"type\":\"start\"}\n" +
				"data: {\"type\":\"content\",\"content\":\"A\"}\n" +
				"data: {\"type\":\"end\",\"full_response\":\"A\"}\n"
			r := stream.NewReader(strings.NewReader(input))

			var contents []string
			terminal, err := stream.Consume(r, stream.Handlers{
				OnContent: func(ev *stream.Event) { contents = append(contents, ev.Content) },
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(terminal).To(Equal(stream.EventEnd))
			Expect(contents).To(Equal([]string{"A"}))
		})

		It("stops at the first terminal event", func() {
			// Nothing after an error event is dispatched, so at most one
			// terminal callback can ever fire per stream.
			input := "data: {\"type\":\"error\",\"error\":\"boom\"}\n" +
				"data: {\"type\":\"content\",\"content\":\"late\"}\n"
			r := stream.NewReader(strings.NewReader(input))

			errors := 0
			contents := 0
			terminal, err := stream.Consume(r, stream.Handlers{
				OnContent: func(*stream.Event) { contents++ },
				OnError:   func(*stream.Event) { errors++ },
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(terminal).To(Equal(stream.EventError))
			Expect(errors).To(Equal(1))
			Expect(contents).To(BeZero())
		})

		It("reports no terminal when the stream just closes", func() {
			input := "data: {\"type\":\"content\",\"content\":\"A\"}\n"
			r := stream.NewReader(strings.NewReader(input))

			terminal, err := stream.Consume(r, stream.Handlers{})

			Expect(err).NotTo(HaveOccurred())
			Expect(terminal).To(BeEmpty())
		})
	})
})
