package main

import (
	"context"
	"fmt"
	"io"
	"os"

	attach "github.com/Protocol-Lattice/go-attach"
	"github.com/Protocol-Lattice/go-attach/src/config"
	"github.com/Protocol-Lattice/go-attach/src/logging"
	"github.com/Protocol-Lattice/go-attach/src/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type options struct {
	configPath       string
	envFile          string
	logLevel         string
	provider         string
	model            string
	maxEncodedLength int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "attachgate",
		Short:         "Normalize file attachments sent with a query",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addFlags(root.PersistentFlags(), opts)

	root.AddCommand(&cobra.Command{
		Use:   "normalize [file|-]",
		Short: "Print the normalized text and attachment summary of a request",
		Long: `
attachgate normalize reads a JSON request of the form

    {"query": "...", "files": [{"base64_data": "...", "filename": "...", "mime_type": "..."}]}

from the named file or standard input and prints the cleaned text, which
form the attachments came from, and a payload-free list of the files.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			req, err := readRequest(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			g := attach.New(attach.Options{
				Attachments:   cfg.Attachments(),
				DecodeWorkers: cfg.DecodeWorkers,
				Logger:        logger,
			})
			res := g.Normalize(req)
			return attach.EncodeSummary(cmd.OutOrStdout(), attach.Summarize(res, g.Config()))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "ask [file|-]",
		Short: "Send a request and its attachments to the configured model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			req, err := readRequest(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			model, err := models.NewLLMProvider(ctx, cfg.Provider, cfg.Model, cfg.PromptPrefix)
			if err != nil {
				return fmt.Errorf("create model: %w", err)
			}
			g := attach.New(attach.Options{
				Model:           model,
				Attachments:     cfg.Attachments(),
				DecodeWorkers:   cfg.DecodeWorkers,
				DecodeCacheSize: cfg.DecodeCacheSize,
				Logger:          logger,
			})
			reply, err := g.Respond(ctx, req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return err
		},
	})
	return root
}

func addFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Environment file loaded before reading ATTACH_* variables")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	flags.StringVar(&opts.provider, "provider", "", "Model provider (openai, gemini, ollama, anthropic, dummy)")
	flags.StringVar(&opts.model, "model", "", "Model name passed to the provider")
	flags.IntVar(&opts.maxEncodedLength, "max-encoded-length", 0, "Maximum base64 payload length in characters")
}

// load resolves configuration; explicit flags win over file and environment.
func (o *options) load() (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(o.configPath, o.envFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.provider != "" {
		cfg.Provider = o.provider
	}
	if o.model != "" {
		cfg.Model = o.model
	}
	if o.maxEncodedLength > 0 {
		cfg.MaxEncodedLength = o.maxEncodedLength
	}
	return cfg, logging.NewLogger(cfg.LogLevel), nil
}

func readRequest(stdin io.Reader, args []string) (attach.Request, error) {
	if len(args) == 0 || args[0] == "-" {
		return attach.DecodeRequest(stdin)
	}
	f, err := os.Open(args[0])
	if err != nil {
		return attach.Request{}, err
	}
	defer f.Close()
	return attach.DecodeRequest(f)
}
