package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"urcloud_chat/pkg/ai"
	"urcloud_chat/pkg/ai/providers"
	"urcloud_chat/pkg/attachment"
	"urcloud_chat/pkg/config"
	"urcloud_chat/pkg/logging"
	"urcloud_chat/pkg/ui"
	"urcloud_chat/pkg/version"

	tea "charm.land/bubbletea/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type options struct {
	configPath  string
	model       string
	attach      string
	showVersion bool
}

var (
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd()))
	}

	newClient = func(cfg config.Config) (ai.Client, string, error) {
		client, err := providers.NewGeminiClient(cfg)
		if err != nil {
			return nil, "", err
		}
		return client, client.Model(), nil
	}

	runProgram = func(ctx context.Context, m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
		return err
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "urcloud_chat",
		Short: ai.AssistantName + " のターミナル版チャット",
		Long: `urcloud_chat is a terminal chat client for tax, accounting, legal and
labor questions, answered by Gemini under a fixed advisory prompt.

An API key is read from the config file, GEMINI_API_KEY or API_KEY
(a .env file in the working directory is loaded first).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.Detailed())
				return nil
			}
			if err := run(cmd.Context(), opts); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", config.GetConfigPath(), "path to the config file")
	flags.StringVar(&opts.model, "model", "", "Gemini model to use (overrides config)")
	flags.StringVar(&opts.attach, "attach", "", "file to attach to the first question (image or PDF)")
	flags.BoolVar(&opts.showVersion, "version", false, "print version information and exit")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}

	if _, err := logging.Init(cfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	slog.Info("app_start", "version", version.Summary(), "config_path", opts.configPath, "model", cfg.Model)

	if err := cfg.Validate(); err != nil {
		slog.Error("config_invalid", "error", err, "config_path", opts.configPath)
		return fmt.Errorf("%w (config: %s)", err, opts.configPath)
	}

	if !isTerminal() {
		return errors.New("urcloud_chat needs an interactive terminal")
	}

	var preload *ai.Attachment
	if opts.attach != "" {
		att, err := attachment.Load(opts.attach, cfg.MaxAttachmentBytes())
		if err != nil {
			return fmt.Errorf("failed to attach %s: %w", opts.attach, err)
		}
		preload = &att
	}

	client, modelName, err := newClient(cfg)
	if err != nil {
		return err
	}

	model := ui.NewModel(ui.Options{
		Client:             client,
		ModelName:          modelName,
		MaxAttachmentBytes: cfg.MaxAttachmentBytes(),
		Attachment:         preload,
		Context:            ctx,
	})

	if err := runProgram(ctx, model); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		slog.Error("program_error", "error", err)
		return fmt.Errorf("ui error: %w", err)
	}
	slog.Info("app_exit")
	return nil
}
