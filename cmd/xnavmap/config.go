package main

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/benz9527/xnavmap/lib/infra"
	"github.com/benz9527/xnavmap/xlog"
)

const (
	envLogLevel     = "XNAVMAP_LOG_LEVEL"
	envXLogLevel    = "XLOG_LVL"
	defaultLogLevel = "INFO"
)

var defaultKeys = []int{5, 3, 7, 2, 4, 6, 8, 1, 9}

type config struct {
	LogLevel   xlog.LogLevel
	LogEncoder xlog.LogEncoderType
	Keys       []int
	Dump       bool
}

// parseConfig reads the flags, falling back to XNAVMAP_LOG_LEVEL and then
// XLOG_LVL when --log-level is not given.
func parseConfig(args []string) (*config, error) {
	fs := pflag.NewFlagSet("xnavmap", pflag.ContinueOnError)
	level := fs.String("log-level", defaultLogLevel, "log level: debug, info, warn or error")
	encoder := fs.String("log-encoder", "text", "log encoder: json or text")
	keys := fs.IntSlice("keys", defaultKeys, "keys inserted into the demo tree, in order")
	dump := fs.Bool("dump", true, "print the tree shape after each structural step")
	if err := fs.Parse(args); err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[xnavmap] parse flags")
	}

	cfg := &config{
		Keys: *keys,
		Dump: *dump,
	}

	lvl := *level
	if !fs.Changed("log-level") {
		if env, ok := os.LookupEnv(envLogLevel); ok {
			lvl = env
		} else if env, ok = os.LookupEnv(envXLogLevel); ok {
			lvl = env
		}
	}
	cfg.LogLevel = xlog.ParseLogLevel(lvl)

	enc, ok := xlog.ParseLogEncoder(*encoder)
	if !ok {
		return nil, infra.NewErrorStack("[xnavmap] unknown log encoder " + *encoder)
	}
	cfg.LogEncoder = enc
	return cfg, nil
}
