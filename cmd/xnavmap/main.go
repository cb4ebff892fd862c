package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"

	"github.com/benz9527/xnavmap/xlog"
)

type banner struct{}

func (banner) JSON() string {
	return "{\"app\":\"xnavmap\"}"
}

func (banner) PlainText() string {
	return "xnavmap - ordered and bidirectional maps on red-black trees"
}

func newLogger(cfg *config) xlog.XLogger {
	logger := xlog.NewXLogger(
		xlog.WithXLoggerLevel(cfg.LogLevel),
		xlog.WithXLoggerEncoder(cfg.LogEncoder),
		xlog.WithXLoggerContextFieldExtract("scenario"),
	)
	logger.Banner(banner{})
	return logger
}

func registerRunner(lc fx.Lifecycle, r *runner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return r.run(ctx)
		},
		OnStop: func(ctx context.Context) error {
			r.logger.Debug("[xnavmap] stopped")
			return nil
		},
	})
}

func newApp(cfg *config, out io.Writer, opts ...fx.Option) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		fx.Provide(
			newLogger,
			func() io.Writer { return out },
			newRunner,
		),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Invoke(registerRunner),
		fx.Options(opts...),
	)
}

// runApp starts and stops the app once; the demo has nothing to wait for.
// A failed start is rolled back by fx, so the stop is still safe to call.
func runApp(app *fx.App) error {
	if err := app.Err(); err != nil {
		return err
	}
	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	err := app.Start(startCtx)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer stopCancel()
	return multierr.Append(err, app.Stop(stopCtx))
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err = runApp(newApp(cfg, os.Stdout)); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
