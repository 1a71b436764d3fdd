package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	prodattr "github.com/goliatone/go-prodattr"
	"github.com/goliatone/go-prodattr/internal/config"
	"github.com/goliatone/go-prodattr/pkg/labels"
	"github.com/goliatone/go-prodattr/pkg/notify"
	"github.com/goliatone/go-prodattr/pkg/page"
)

const usage = `usage: prodattr-cli [-config file] [-endpoint url] <command> [flags]

commands:
  describe -type T [-code C]   print the caption of an attribute
  label VALUE                  print the label of a boolean attribute value
  render -type T [-in f] [-out f]
                               fill the attribute inputs of an HTML page
`

func main() {
	ctx := context.Background()
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, surveyPrompter{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	cfg    config.Config
	labels labels.Set
	logger *zap.Logger
	module func() (*prodattr.Module, error)
	prompt prompter
	stdin  io.Reader
	stdout io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, prompt prompter) error {
	fs := flag.NewFlagSet("prodattr-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "YAML config file")
	endpoint := fs.String("endpoint", "", "products.d endpoint URL (overrides config)")
	verbose := fs.Bool("v", false, "log loader activity to stderr")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w\n%s", err, usage)
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *endpoint != "" {
		cfg.Backend.Endpoint = *endpoint
	}

	logger := zap.NewNop()
	if *verbose {
		if logger, err = (config.LoggingConfig{Level: "debug", Development: true}).NewLogger(); err != nil {
			return err
		}
	}

	set := labels.Defaults()
	if cfg.Labels.File != "" {
		if set, err = labels.LoadFile(cfg.Labels.File); err != nil {
			return err
		}
	}

	a := &app{cfg: cfg, labels: set, logger: logger, prompt: prompt, stdin: stdin, stdout: stdout}
	a.module = func() (*prodattr.Module, error) {
		if strings.TrimSpace(a.cfg.Backend.Endpoint) == "" {
			return nil, errors.New("no backend endpoint: pass -endpoint or set PRODATTR_BACKEND_ENDPOINT")
		}
		loader := prodattr.NewLoader(a.cfg.Backend.LoaderOptions(a.logger)...)
		return prodattr.New(loader,
			prodattr.WithLabels(a.labels),
			prodattr.WithLogger(a.logger),
			prodattr.WithReporter(notify.NewZapReporter(a.logger)),
			prodattr.WithTheme(a.cfg.Theme.RendererConfig()),
			prodattr.WithMaxConcurrentLoads(a.cfg.Backend.MaxLoads),
		)
	}
	return a.dispatch(ctx, fs.Args())
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	switch args[0] {
	case "describe":
		return a.describe(ctx, args[1:])
	case "label":
		return a.label(ctx, args[1:])
	case "render":
		return a.render(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func (a *app) describe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	typeID := fs.String("type", "", "product type id")
	code := fs.String("code", "", "attribute code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.ask(ctx, typeID, "Product type id"); err != nil {
		return err
	}
	mod, err := a.module()
	if err != nil {
		return err
	}
	if *code == "" {
		schema, err := mod.LoadSchema(ctx, *typeID)
		if err != nil {
			return err
		}
		codes := schema.Codes()
		if len(codes) == 0 {
			return fmt.Errorf("type %q has no attributes", *typeID)
		}
		if *code, err = a.prompt.Select(ctx, "Attribute", codes); err != nil {
			return err
		}
	}

	description, err := mod.LoadDescription(ctx, *typeID, *code)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, description)
	return err
}

func (a *app) label(ctx context.Context, args []string) error {
	value := ""
	if len(args) > 0 {
		value = args[0]
	}
	if err := a.ask(ctx, &value, "Boolean attribute value"); err != nil {
		return err
	}
	label := a.labels.LabelForBooleanValue(strings.TrimSpace(value))
	if label == "" {
		return fmt.Errorf("no label for value %q", value)
	}
	_, err := fmt.Fprintln(a.stdout, label)
	return err
}

func (a *app) render(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	typeID := fs.String("type", "", "product type id")
	in := fs.String("in", "", "input HTML file (stdin if empty)")
	out := fs.String("out", "", "output file (stdout if empty)")
	timeout := fs.Duration("timeout", 30*time.Second, "overall time limit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.ask(ctx, typeID, "Product type id"); err != nil {
		return err
	}

	src := a.stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}
	doc, err := page.Parse(src)
	if err != nil {
		return err
	}

	mod, err := a.module()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	batch, err := mod.RenderInputs(ctx, doc, *typeID, nil)
	if err != nil {
		return err
	}
	if err := batch.Wait(ctx); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if *out == "" {
		return doc.Render(a.stdout)
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := doc.Render(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "Page written to %s\n", *out)
	return err
}

// ask prompts for *value when it is empty.
func (a *app) ask(ctx context.Context, value *string, message string) error {
	if strings.TrimSpace(*value) != "" {
		return nil
	}
	answer, err := a.prompt.Input(ctx, message, "")
	if err != nil {
		return err
	}
	*value = strings.TrimSpace(answer)
	return nil
}
