package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/kanzure/modelo/internal/logging"
	"github.com/kanzure/modelo/pkg/loader"
	"github.com/kanzure/modelo/pkg/model"
	"github.com/kanzure/modelo/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"
)

// options holds the flag values shared by the commands.
type options struct {
	schema   string
	typeName string
	logLevel string
	output   string
	metrics  bool
}

// app carries what a command run needs: flags, writers, logger and metrics.
type app struct {
	opts    options
	out     io.Writer
	errOut  io.Writer
	logger  *slog.Logger
	metrics *observability.Metrics
}

func (a *app) setup() error {
	level, err := logging.ParseLevel(a.opts.logLevel)
	if err != nil {
		return err
	}
	a.logger = logging.NewWriter(a.errOut, level)
	if a.opts.metrics {
		a.metrics = observability.NewMetrics(prometheus.NewRegistry())
	}
	return nil
}

// teardown dumps the counters when --metrics is set.
func (a *app) teardown() error {
	if a.metrics == nil {
		return nil
	}
	return a.metrics.WriteText(a.errOut)
}

func (a *app) hooks() model.Hooks {
	logHooks := observability.LogHooks(a.logger)
	if a.metrics == nil {
		return logHooks
	}
	return observability.Chain(a.metrics.Hooks(), logHooks)
}

func (a *app) loadSchema() (*loader.Schema, error) {
	if a.opts.schema == "" {
		return nil, errors.New("--schema is required")
	}
	return loader.Load(a.opts.schema,
		loader.WithLogger(a.logger),
		loader.WithHooks(a.hooks()),
	)
}

// loadType loads the schema and picks the --type type, or the last declared
// one when the flag is empty.
func (a *app) loadType() (*model.Type, error) {
	s, err := a.loadSchema()
	if err != nil {
		return nil, err
	}
	return s.Lookup(a.opts.typeName)
}

func (a *app) print(v any) error {
	switch a.opts.output {
	case "", "json":
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %q", a.opts.output)
}
