// Package chatcmder provides the chat command for interactive sessions
// with the LLM Practice backend.
package chatcmder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ladlehq/ladle/pkg/api"
	"github.com/ladlehq/ladle/pkg/cliui"
	"github.com/ladlehq/ladle/pkg/config"
	"github.com/ladlehq/ladle/pkg/conversation"
	"github.com/ladlehq/ladle/pkg/dotdir"
	"github.com/ladlehq/ladle/pkg/logger"
	"github.com/ladlehq/ladle/pkg/stream"
)

var (
	userPrompt      = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("you> ")
	assistantPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("assistant> ")
)

type chatCommander struct {
	apiTarget   string
	model       string
	temperature float64
	maxTokens   int
	noStream    bool
	debug       bool
	configDir   string

	logger *slog.Logger
	client *api.Client
	conv   *conversation.Conversation
}

const chatLongDesc string = `Start an interactive chat session with the culinary assistant.

Messages stream back token by token as the model generates them. If the
stream fails mid-response the partial assistant message is withdrawn so
the transcript never shows half an answer; your own message stays and can
be re-sent.

Session commands:
  /clear   Forget the visible transcript and start fresh
  /exit    Quit (Ctrl+D also works)

Examples:
  ladle chat
  ladle chat --model gpt-4o-mini --temperature 0.2
  ladle chat --no-stream`

const chatShortDesc string = "Interactive chat with the culinary assistant"

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagAPITarget,
				config.FlagModel,
				config.FlagTemperature,
				config.FlagMaxTokens,
			})

			cmder.apiTarget = v.GetString("client.api_target")
			cmder.model = v.GetString("chat.model")
			cmder.temperature = v.GetFloat64("chat.temperature")
			cmder.maxTokens = v.GetInt("chat.max_tokens")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.apiTarget)
	config.AddStringFlag(cmd, config.Flags, config.FlagModel, &cmder.model)
	config.AddFloat64Flag(cmd, config.Flags, config.FlagTemperature, &cmder.temperature)
	config.AddIntFlag(cmd, config.Flags, config.FlagMaxTokens, &cmder.maxTokens)
	cmd.Flags().BoolVar(&cmder.noStream, "no-stream", false, "Wait for the full response instead of streaming")

	return cmd
}

func (c *chatCommander) run() error {
	c.logger = logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
		logger.WithWriter(os.Stderr),
	)

	// In debug mode, also mirror structured logs into .ladle/ladle.log.
	if c.debug {
		dir, err := dotdir.NewManager().Target(c.configDir)
		if err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "ladle.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				defer f.Close()
				c.logger = logger.Multi(
					c.logger,
					logger.New(logger.WithDebug(true), logger.WithJSON(true), logger.WithWriter(f)),
				)
			}
		}
	}

	c.client = api.New(c.apiTarget, api.WithLogger(c.logger))
	c.conv = conversation.New()

	fmt.Println()
	fmt.Printf("  %s %s\n",
		cliui.KeyStyle.Render("Model:"),
		cliui.NameStyle.Render(c.model),
	)
	fmt.Printf("  %s %s\n\n",
		cliui.KeyStyle.Render("Target:"),
		cliui.ValueStyle.Render(c.apiTarget),
	)
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Type your message and press Enter. /clear to reset, /exit or Ctrl+D to quit."))

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(userPrompt)
		if !scanner.Scan() {
			// EOF or error
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/exit" {
			break
		}
		if input == "/clear" {
			c.conv.Clear()
			fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Conversation cleared."))
			continue
		}

		c.conv.AppendUser(input)

		var err error
		if c.noStream {
			err = c.sendBlocking(input)
		} else {
			err = c.sendStreaming(input)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s %v\n", cliui.FailMark, err)
		}

		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Println()
	return nil
}

// sendStreaming opens a streaming chat request and prints tokens as they
// arrive. The assistant placeholder is withdrawn on any failure so the
// transcript only ever holds completed responses.
func (c *chatCommander) sendStreaming(input string) error {
	id := c.conv.BeginAssistant(c.model)

	fmt.Print(assistantPrompt)

	var failure string
	handlers := stream.Handlers{
		OnStart: func(ev *stream.Event) {
			c.logger.Debug("stream started", "model", ev.Model)
		},
		OnContent: func(ev *stream.Event) {
			fmt.Print(ev.Content)
			c.conv.AppendContent(id, ev.Content)
		},
		OnEnd: func(ev *stream.Event) {
			c.conv.Finalize(id, ev.FullResponse, ev.ModelUsed)
		},
		OnError: func(ev *stream.Event) {
			c.conv.Remove(id)
			failure = ev.Error
		},
	}

	req := api.ChatRequest{
		Message:     input,
		Model:       c.model,
		Temperature: &c.temperature,
		MaxTokens:   &c.maxTokens,
	}

	if err := c.client.ChatStream(context.Background(), req, handlers); err != nil {
		fmt.Println()
		return err
	}
	if failure != "" {
		fmt.Println()
		return errors.New(failure)
	}

	fmt.Println()
	return nil
}

// sendBlocking uses the non-streaming endpoint and renders the complete
// response as markdown once it arrives.
func (c *chatCommander) sendBlocking(input string) error {
	id := c.conv.BeginAssistant(c.model)

	req := api.ChatRequest{
		Message:     input,
		Model:       c.model,
		Temperature: &c.temperature,
		MaxTokens:   &c.maxTokens,
	}

	var resp *api.ChatResponse
	err := cliui.Step(os.Stdout, "waiting for response", func() error {
		var stepErr error
		resp, stepErr = c.client.Chat(context.Background(), req)
		return stepErr
	})
	if err != nil {
		c.conv.Remove(id)
		return err
	}

	c.conv.Finalize(id, resp.Response, resp.ModelUsed)

	rendered, err := cliui.RenderMarkdown(resp.Response)
	if err != nil {
		rendered = resp.Response + "\n"
	}

	fmt.Println(assistantPrompt)
	fmt.Print(rendered)
	fmt.Printf("  %s\n", cliui.DimStyle.Render(
		fmt.Sprintf("%s · %d tokens", resp.ModelUsed, resp.TokensUsed),
	))
	return nil
}
