package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	kenburns "github.com/stateforward/go-kenburns"
	"github.com/stateforward/go-kenburns/config"
	"github.com/stateforward/go-kenburns/kinds"
	"github.com/stateforward/go-kenburns/loop"
	"github.com/stateforward/go-kenburns/pkg/logging"
	"github.com/stateforward/go-kenburns/pkg/metrics"
	"github.com/stateforward/go-kenburns/pkg/telemetry"
	"github.com/stateforward/go-kenburns/style"
)

type simulation struct {
	config   config.Config
	duration time.Duration
	realtime bool
	trace    bool
	spans    bool
	logger   *slog.Logger
	out      io.Writer
}

// epoch keeps virtual runs reproducible.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func (s simulation) run(ctx context.Context) error {
	registry := prometheus.NewRegistry()
	options := append(s.config.Options(),
		kenburns.WithContext(ctx),
		kenburns.WithLogger(s.logger),
		kenburns.WithMetrics(metrics.New(registry)),
	)
	var provider trace.TracerProvider = telemetry.NewDiscard()
	if s.spans {
		sdk := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewSpanLog(s.logger)))
		defer sdk.Shutdown(context.WithoutCancel(ctx))
		provider = sdk
	}
	traces := []telemetry.Trace{telemetry.New(provider.Tracer("kenburns"))}
	if s.trace {
		traces = append(traces, telemetry.Filter(telemetry.Log(s.logger), kinds.Slideshow))
	}
	options = append(options, kenburns.WithTrace(telemetry.Join(traces...)))

	var scheduler loop.Scheduler
	var virtual *loop.Virtual
	var wall *loop.Loop
	if s.realtime {
		wall = loop.New().WithLogger(s.logger)
		scheduler = wall
	} else {
		virtual = loop.NewVirtual(epoch)
		scheduler = virtual
	}
	start := scheduler.Now()

	container := style.NewNode(scheduler, "kenburns")
	container.OnChange(func(change style.Change) {
		if style.Normalize(change.Property) != "opacity" {
			return
		}
		fmt.Fprintf(s.out, "%10s  %-40s opacity %q -> %q  [%s]\n",
			change.At.Sub(start).Round(time.Millisecond),
			change.Target.Get("background-image"),
			change.Old, change.New,
			strings.Join(change.Target.Markers(), " "))
	})

	show := kenburns.New(container, s.config.Images, scheduler, options...)
	defer show.Destroy()

	if virtual != nil {
		virtual.Drain()
		virtual.Advance(s.duration)
	} else {
		ctx, cancel := context.WithTimeout(ctx, s.duration)
		defer cancel()
		if err := wall.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
	}
	return s.summarize(registry)
}

func (s simulation) summarize(registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			var value float64
			switch {
			case metric.GetCounter() != nil:
				value = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				value = metric.GetGauge().GetValue()
			default:
				continue
			}
			attrs := []any{"metric", family.GetName(), "value", value}
			for _, label := range metric.GetLabel() {
				attrs = append(attrs, label.GetName(), label.GetValue())
			}
			s.logger.Info("summary", attrs...)
		}
	}
	return nil
}

var runCmd = &cobra.Command{
	Use:   "run [image...]",
	Short: "Simulate a slideshow",
	Long:  `Builds a slideshow from the configuration (and any images given as arguments) and prints each opacity change. Virtual time is used unless --realtime is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := loadConfig(path, args)
		if err != nil {
			return err
		}
		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = cfg.LogLevel
		}
		duration, _ := cmd.Flags().GetDuration("duration")
		realtime, _ := cmd.Flags().GetBool("realtime")
		steps, _ := cmd.Flags().GetBool("trace")
		spans, _ := cmd.Flags().GetBool("spans")
		return simulation{
			config:   cfg,
			duration: duration,
			realtime: realtime,
			trace:    steps,
			spans:    spans,
			logger:   logging.New(logging.ParseLevel(level), cmd.ErrOrStderr()),
			out:      cmd.OutOrStdout(),
		}.run(cmd.Context())
	},
}

// loadConfig loads path and appends images given on the command line.
func loadConfig(path string, images []string) (config.Config, error) {
	cfg, err := config.Load(path)
	if len(images) == 0 || (err != nil && !errors.Is(err, config.ErrNoImages)) {
		return cfg, err
	}
	cfg.Images = append(cfg.Images, images...)
	return cfg, cfg.Validate()
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationP("duration", "d", 30*time.Second, "How long to run the slideshow")
	runCmd.Flags().Bool("realtime", false, "Run against the wall clock instead of virtual time")
	runCmd.Flags().Bool("trace", false, "Log slideshow steps at debug level")
	runCmd.Flags().Bool("spans", false, "Record OpenTelemetry spans and log each one as it ends")
}
