package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"chat-agent/internal/client"
	"chat-agent/internal/config"
	"chat-agent/internal/domain"
	"chat-agent/internal/ui"
)

type askFlags struct {
	provider   string
	model      string
	system     string
	search     bool
	url        string
	wordWrap   int
	accessible bool
}

func newAskCmd() *cobra.Command {
	var f askFlags
	cmd := &cobra.Command{
		Use:   "ask [query]",
		Short: "Ask an agent through the chat API",
		Long: "Ask an agent through the chat API. Values not given as flags or arguments\n" +
			"are asked for interactively.",
		Example: `  chat-agent ask
  chat-agent ask --provider Groq --model llama-3.3-70b-versatile --search=false "What is Go?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := draftFromFlags(f, cmd.Flags().Changed("search"), args)
			return runAsk(cmd.Context(), f, d)
		},
	}
	cmd.Flags().StringVar(&f.provider, "provider", "", "model provider (Groq or Openai)")
	cmd.Flags().StringVar(&f.model, "model", "", "model name")
	cmd.Flags().StringVar(&f.system, "system", "", "system prompt defining the agent")
	cmd.Flags().BoolVar(&f.search, "search", true, "allow the agent to search the web")
	cmd.Flags().StringVar(&f.url, "url", "", "chat API URL (defaults to AGENT_API_URL)")
	cmd.Flags().IntVar(&f.wordWrap, "word-wrap", 80, "wrap rendered responses at this width")
	cmd.Flags().BoolVar(&f.accessible, "accessible", false, "use the accessible form mode")
	return cmd
}

func draftFromFlags(f askFlags, searchSet bool, args []string) ui.Draft {
	d := ui.NewDraft()
	d.Provider = domain.Provider(strings.TrimSpace(f.provider))
	d.Model = strings.TrimSpace(f.model)
	d.SystemPrompt = f.system
	d.Query = strings.Join(args, " ")
	if searchSet {
		d.AllowSearch = f.search
		d.SearchSet = true
	}
	return d
}

func runAsk(ctx context.Context, f askFlags, d ui.Draft) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	url := f.url
	if url == "" {
		url = cfg.APIURL
	}

	if !d.Complete() {
		d, err = ui.NewForm(ui.DefaultCatalog(), f.accessible).Fill(ctx, d)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("read chat request: %w", err)
		}
	}

	req, err := d.Request()
	if errors.Is(err, ui.ErrEmptyQuery) {
		fmt.Fprintln(os.Stderr, "Nothing to ask: the query is empty.")
		return nil
	}
	if err != nil {
		return err
	}

	reply, err := client.New(client.WithURL(url)).Chat(ctx, req)
	if err != nil {
		return err
	}
	return ui.NewPrinter(os.Stdout, f.wordWrap, "").Print(reply)
}
