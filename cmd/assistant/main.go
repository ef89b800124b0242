// Command assistant is an interactive Gemini chat that drives the jobkit MCP tools
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/honeycarbs/jobkit/pkg/llm"
	"github.com/honeycarbs/jobkit/pkg/logging"
)

const defaultEndpoint = "http://localhost:8080"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	logger := logging.New(getenv("LOG_LEVEL", "warn"), getenv("LOG_FORMAT", "console")).Named("assistant")
	defer func() { _ = logger.Sync() }()

	if err := run(logger, os.Args[1:]); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("assistant stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *logging.Logger, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return errors.New("GEMINI_API_KEY must be set")
	}
	token := os.Getenv("JOBKIT_TOKEN")
	if token == "" {
		return errors.New("JOBKIT_TOKEN must be set to a session token from /api/auth/login")
	}

	endpoint := endpointURL(os.Getenv("MCP_URL"))
	model := getenv("GEMINI_MODEL", llm.DefaultGeminiModel)

	agent, err := NewAgent(ctx, endpoint, token, apiKey, model, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := agent.Close(); err != nil {
			logger.Warn("close agent", "error", err)
		}
	}()

	logger.Info("connected", "endpoint", endpoint, "session", agent.SessionID(), "tools", len(agent.Tools()))

	if len(args) > 0 {
		answer, err := agent.Ask(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(answer)
		return nil
	}

	printTools(agent)
	return repl(ctx, agent, logger)
}

func repl(ctx context.Context, agent *Agent, logger *logging.Logger) error {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		fmt.Print("\n> ")

		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(line)
			switch strings.ToLower(line) {
			case "":
				continue
			case "q", "quit", "exit":
				return nil
			}

			answer, err := agent.Ask(ctx, line)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Warn("request failed", "error", err)
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Println(answer)
		}
	}
}

func printTools(agent *Agent) {
	fmt.Println("Available tools:")
	for _, tool := range agent.Tools() {
		desc := strings.ReplaceAll(tool.Description, "\n", " ")
		if len(desc) > 100 {
			desc = desc[:100] + "..."
		}
		fmt.Printf("  %s - %s\n", tool.Name, desc)
	}
	fmt.Println("Type 'quit' to exit.")
}

// endpointURL accepts a bare server address and points it at the MCP stream
func endpointURL(raw string) string {
	if raw == "" {
		raw = defaultEndpoint
	}
	if strings.HasSuffix(raw, "/mcp/stream") {
		return raw
	}
	return strings.TrimSuffix(raw, "/") + "/mcp/stream"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
