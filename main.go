package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/insightdelivered/statement-tables/internal/api"
	"github.com/insightdelivered/statement-tables/internal/config"
	"github.com/insightdelivered/statement-tables/internal/extractor"
	"github.com/insightdelivered/statement-tables/internal/parser"
	"github.com/insightdelivered/statement-tables/internal/tokenizer"
	"github.com/insightdelivered/statement-tables/internal/writer"
)

func main() {
	cmd := &cli.Command{
		Name:    "statement-tables",
		Usage:   "Extract declared tables from text-based statement PDFs",
		Version: api.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file with statement families and table declarations",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "PDF text backend: " + strings.Join(extractor.Backends(), ", "),
			},
			&cli.StringFlag{
				Name:  "scheme",
				Usage: "Position scheme: index or scaled",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "text or json",
				Value: "text",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "Write every table of each statement as CSV",
				ArgsUsage: "<input.pdf> [input2.pdf ...]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "family", Aliases: []string{"f"}, Usage: "Statement family (auto-detected if omitted)"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file, '-' for stdout (default: input name with .csv or .json)"},
					&cli.StringFlag{Name: "format", Usage: "csv or json", Value: "csv"},
					&cli.BoolFlag{Name: "header", Usage: "Include '# Family' and '# Table' metadata rows in CSV", Value: true},
				},
				Action: runExtract,
			},
			{
				Name:      "rows",
				Usage:     "Print the merged body rows of one table without column splitting",
				ArgsUsage: "<input.pdf>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "family", Aliases: []string{"f"}, Usage: "Statement family (auto-detected if omitted)"},
					&cli.StringFlag{Name: "table", Aliases: []string{"t"}, Usage: "Declared table name", Required: true},
				},
				Action: runRows,
			},
			{
				Name:      "tokens",
				Usage:     "Print every positioned word as page:row:column",
				ArgsUsage: "<input.pdf>",
				Action:    runTokens,
			},
			{
				Name:  "serve",
				Usage: "Run the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "listen", Aliases: []string{"l"}, Usage: "Listen address (default from config)"},
				},
				Action: runServe,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(cmd *cli.Command) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
		return nil, errors.Wrap(err, "--log-level")
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cmd.String("log-format")) {
	case "", "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, errors.Errorf("unknown --log-format %q (want text or json)", cmd.String("log-format"))
	}
}

// setup loads the configuration, applies flag overrides and builds a parser.
func setup(cmd *cli.Command) (*parser.Parser, *config.Config, *slog.Logger, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		if cfg, err = config.Load(path); err != nil {
			return nil, nil, nil, err
		}
	}
	if b := cmd.String("backend"); b != "" {
		cfg.Backend = b
	}
	if s := cmd.String("scheme"); s != "" {
		cfg.Scheme = s
	}

	src, err := extractor.New(cfg.Backend, logger, cfg.Readability.Quality())
	if err != nil {
		return nil, nil, nil, err
	}
	scheme, err := tokenizer.ParseScheme(cfg.Scheme)
	if err != nil {
		return nil, nil, nil, err
	}
	families, err := parser.FamiliesFromConfig(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	p := parser.New(parser.Config{
		Source:         src,
		Scheme:         scheme,
		Families:       families,
		MergeTolerance: cfg.MergeTolerance,
		Logger:         logger,
	})
	return p, cfg, logger, nil
}

func runExtract(_ context.Context, cmd *cli.Command) error {
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		return errors.New("no input PDF given")
	}
	output := cmd.String("output")
	if output != "" && output != "-" && len(inputs) > 1 {
		return errors.New("--output can only be used with a single input file")
	}
	format := cmd.String("format")
	w, err := writer.New(format, cmd.Bool("header"))
	if err != nil {
		return err
	}

	p, _, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		if err := processFile(p, logger, w, in, cmd.String("family"), output, writer.Extension(format)); err != nil {
			return errors.Wrapf(err, "processing %s", in)
		}
	}
	return nil
}

func processFile(p *parser.Parser, logger *slog.Logger, w writer.StatementWriter, inputPath, family, outputPath, ext string) error {
	if err := checkPDF(inputPath); err != nil {
		return err
	}
	log := logger.With("input", inputPath)

	st, err := p.Parse(inputPath, family)
	if err != nil {
		return err
	}
	for _, nt := range st.Tables {
		log.Info("table", "family", string(st.Family), "name", nt.Name, "found", nt.Table.Found(), "rows", len(nt.Table.Rows))
	}

	outPath := outputPath
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "." + ext
	}
	if outPath == "-" {
		return w.Write(os.Stdout, st)
	}
	if err := w.WriteToFile(outPath, st); err != nil {
		return err
	}
	log.Info("output written", "path", outPath)
	return nil
}

func runRows(_ context.Context, cmd *cli.Command) error {
	in, err := singleInput(cmd)
	if err != nil {
		return err
	}
	p, _, _, err := setup(cmd)
	if err != nil {
		return err
	}
	rows, err := p.Rows(in, cmd.String("family"), cmd.String("table"))
	if err != nil {
		return err
	}
	return (&writer.CSVWriter{}).WriteRows(os.Stdout, rows)
}

func runTokens(_ context.Context, cmd *cli.Command) error {
	in, err := singleInput(cmd)
	if err != nil {
		return err
	}
	p, _, _, err := setup(cmd)
	if err != nil {
		return err
	}
	words, err := p.Tokens(in)
	if err != nil {
		return err
	}
	for _, w := range words {
		fmt.Printf("%s\t%s\n", w.Pos, w.Text)
	}
	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	p, cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	listen := cmd.String("listen")
	if listen == "" {
		listen = cfg.Listen
	}

	app := fiber.New(fiber.Config{
		AppName:               "statement-tables " + api.Version,
		BodyLimit:             cfg.MaxUploadMB << 20,
		DisableStartupMessage: true,
	})
	api.New(p, logger).RegisterRoutes(app)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", listen, "backend", cfg.Backend, "scheme", cfg.Scheme)
		errc <- app.Listen(listen)
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func singleInput(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", errors.New("exactly one input PDF is required")
	}
	in := cmd.Args().First()
	return in, checkPDF(in)
}

func checkPDF(path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(err, "input file")
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" {
		return errors.Errorf("expected .pdf file, got %q", ext)
	}
	return nil
}
