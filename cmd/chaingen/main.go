package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ib-77/pnext/pkg/chain/gen"
	"github.com/ib-77/pnext/pkg/chain/schema"
)

type envKey struct{}

type env struct {
	log *zap.Logger
}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	return &env{log: zap.NewNop()}
}

func newLogger(debug bool) (*zap.Logger, error) {
	conf := zap.NewDevelopmentConfig()
	conf.EncoderConfig.EncodeCaller = nil
	conf.EncoderConfig.TimeKey = zapcore.OmitKey
	conf.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	conf.DisableStacktrace = true
	if debug {
		conf.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		conf.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return conf.Build()
}

func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	e := envFromContext(ctx)

	log, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	e.log = log
	e.log.Debug("Program started", zap.Strings("args", cmd.Args().Slice()))
	return ctx, nil
}

func destroyAppContext(ctx context.Context, _ *cli.Command) error {
	e := envFromContext(ctx)
	e.log.Debug("Program ended")
	// stderr sync fails on some terminals, nothing useful to report
	_ = e.log.Sync()
	return nil
}

// errors from argument parsing happen before the logger exists and are
// reported to stderr directly
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	envFromContext(ctx).log.Error("Program ended with error", zap.Error(err))
	errWasHandled = true
}

func loadDecl(ctx context.Context, cmd *cli.Command) (*schema.Decl, string, error) {
	if cmd.NArg() != 1 {
		return nil, "", fmt.Errorf("exactly one declaration file expected, got %d", cmd.NArg())
	}
	path := cmd.Args().First()

	d, err := schema.LoadDeclFile(path)
	if err != nil {
		return nil, "", err
	}
	envFromContext(ctx).log.Debug("Declaration loaded", zap.String("file", path),
		zap.Int("types", len(d.Types)), zap.Int("roots", len(d.Roots)))
	return d, path, nil
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	log := envFromContext(ctx).log

	d, path, err := loadDecl(ctx, cmd)
	if err != nil {
		return err
	}

	src, err := gen.Generate(d, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out := cmd.String("out")
	if out == "" {
		_, err = cmd.Root().Writer.Write(src)
		return err
	}
	if err := writeFile(out, src); err != nil {
		return err
	}
	log.Info("Source generated", zap.String("from", path), zap.String("to", out))
	return nil
}

func writeFile(name string, data []byte) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("unable to create output: %w", err)
	}
	defer func() {
		if er := f.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close output '%s': %w", name, er))
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	d, path, err := loadDecl(ctx, cmd)
	if err != nil {
		return err
	}
	return printSchemas(cmd.Root().Writer, path, d)
}

func printSchemas(w io.Writer, path string, d *schema.Decl) error {
	if _, err := fmt.Fprintf(w, "%s: package %s, %d types, %d roots\n", path, d.Package, len(d.Types), len(d.Roots)); err != nil {
		return err
	}
	for _, r := range d.Roots {
		s, err := d.SchemaFor(r.Name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  %s: %v\n", r.Name, r.Extensions); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "    tags: %d %v\n", s.Len(), tagValues(s)); err != nil {
			return err
		}
	}
	return nil
}

func tagValues(s *schema.Schema) []uint32 {
	out := make([]uint32, 0, s.Len())
	for _, t := range s.Tags() {
		out = append(out, uint32(t))
	}
	return out
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            "chaingen",
		Usage:           "generates record types, schemas and extracted sets for tagged chains",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "verbose logging"},
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "Renders Go source for a declaration",
				ArgsUsage: "DECLARATION",
				Action:    runGenerate,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write source to `FILE` instead of STDOUT"},
				},
			},
			{
				Name:      "check",
				Usage:     "Validates a declaration and prints its schemas",
				ArgsUsage: "DECLARATION",
				Action:    runCheck,
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.WithValue(context.Background(), envKey{}, &env{log: zap.NewNop()}),
		os.Interrupt, syscall.SIGTERM)

	var err error
	// NOTE: os.Exit skips deferred calls, keep it last
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}
