package statuscmder_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	statuscmder "github.com/ladlehq/ladle/cmd/ladle/status"
)

var _ = Describe("NewStatusCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := statuscmder.NewStatusCmd()
		Expect(cmd.Use).To(Equal("status"))
	})

	It("has --api-target flag with default value", func() {
		cmd := statuscmder.NewStatusCmd()
		flag := cmd.Flags().Lookup("api-target")
		Expect(flag).NotTo(BeNil())
		Expect(flag.DefValue).To(Equal("http://localhost:8000/api/v1"))
	})
})

var _ = Describe("Status command execution", func() {
	It("reports a healthy backend", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/health":
				fmt.Fprint(w, `{"status": "healthy", "service": "llm-api", "timestamp": "2024-01-01T00:00:00Z"}`)
			case "/status":
				fmt.Fprint(w, `{"status": "operational", "openai_connected": true, "database_connected": true, "timestamp": "2024-01-01T00:00:00Z"}`)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		cmd := statuscmder.NewStatusCmd()
		cmd.SetArgs([]string{"--api-target", server.URL})
		err := cmd.Execute()
		Expect(err).NotTo(HaveOccurred())
	})

	It("fails when the backend is unreachable", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		server.Close()

		cmd := statuscmder.NewStatusCmd()
		cmd.SetArgs([]string{"--api-target", server.URL})
		err := cmd.Execute()
		Expect(err).To(HaveOccurred())
	})
})
