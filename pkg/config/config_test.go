package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ladlehq/ladle/pkg/config"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "ladle-config-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(dir) })
	})

	Describe("NewDefaultConfig", func() {
		It("populates every field", func() {
			cfg := config.NewDefaultConfig()

			Expect(cfg.Client.APITarget).To(Equal("http://localhost:8000/api/v1"))
			Expect(cfg.Chat.Model).To(Equal("gpt-3.5-turbo"))
			Expect(cfg.Chat.Temperature).To(BeNumerically("~", 0.7, 0.001))
			Expect(cfg.Chat.MaxTokens).To(Equal(150))
		})
	})

	Describe("LoadConfig", func() {
		It("returns defaults when no file exists", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Chat.Model).To(Equal("gpt-3.5-turbo"))
		})

		It("fills unset fields from defaults", func() {
			path := filepath.Join(dir, "config.toml")
			Expect(os.WriteFile(path, []byte("[chat]\nmodel = \"gpt-4o-mini\"\n"), 0o600)).To(Succeed())

			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Chat.Model).To(Equal("gpt-4o-mini"))
			Expect(cfg.Chat.MaxTokens).To(Equal(150))
			Expect(cfg.Client.APITarget).To(Equal("http://localhost:8000/api/v1"))
		})
	})

	Describe("ParseConfigTOML", func() {
		It("rejects malformed TOML", func() {
			_, err := config.ParseConfigTOML([]byte("not [valid"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SetConfigValue and GetConfigValue", func() {
		It("round-trips a value through config.toml", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("chat.model", "gpt-4o-mini")).To(Succeed())

			reloaded, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			value, err := reloaded.GetConfigValue("chat.model")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("gpt-4o-mini"))
		})

		It("rejects unknown keys", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("chat.bogus", "x")).NotTo(Succeed())

			_, err = cfger.GetConfigValue("chat.bogus")
			Expect(err).To(HaveOccurred())
		})

		It("validates the temperature range", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("chat.temperature", "3.5")).NotTo(Succeed())
			Expect(cfger.SetConfigValue("chat.temperature", "0.3")).To(Succeed())
		})

		It("validates the max_tokens range", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("chat.max_tokens", "0")).NotTo(Succeed())
			Expect(cfger.SetConfigValue("chat.max_tokens", "abc")).NotTo(Succeed())
			Expect(cfger.SetConfigValue("chat.max_tokens", "2000")).To(Succeed())
		})
	})

	Describe("ValidConfigKeys", func() {
		It("lists every supported key", func() {
			keys := config.ValidConfigKeys()

			Expect(keys).To(ContainElements(
				"client.api_target",
				"chat.model",
				"chat.temperature",
				"chat.max_tokens",
			))
			for _, k := range keys {
				Expect(config.IsValidConfigKey(k)).To(BeTrue())
			}
		})
	})

	Describe("InitViper", func() {
		It("layers environment variables over defaults", func() {
			Expect(os.Setenv("LADLE_CHAT_MODEL", "gpt-4o-mini")).To(Succeed())
			DeferCleanup(func() { os.Unsetenv("LADLE_CHAT_MODEL") })

			v, err := config.InitViper(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(v.GetString("chat.model")).To(Equal("gpt-4o-mini"))
			Expect(v.GetString("client.api_target")).To(Equal("http://localhost:8000/api/v1"))
		})

		It("reads values from config.toml", func() {
			path := filepath.Join(dir, "config.toml")
			Expect(os.WriteFile(path, []byte("[client]\napi_target = \"http://example.test/api/v1\"\n"), 0o600)).To(Succeed())

			v, err := config.InitViper(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(v.GetString("client.api_target")).To(Equal("http://example.test/api/v1"))
		})
	})
})
