package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/benz9527/xnavmap/xlog"
)

func TestParseConfig(t *testing.T) {
	t.Setenv(envLogLevel, "")
	t.Setenv(envXLogLevel, "")

	testcases := []struct {
		name    string
		args    []string
		env     map[string]string
		level   xlog.LogLevel
		encoder xlog.LogEncoderType
		keys    []int
		dump    bool
		wantErr bool
	}{
		{
			name:    "defaults",
			level:   xlog.LogLevelDebug, // empty env value
			encoder: xlog.PlainText,
			keys:    defaultKeys,
			dump:    true,
		},
		{
			name:    "flags",
			args:    []string{"--log-level", "warn", "--log-encoder", "json", "--keys", "3,1,2", "--dump=false"},
			env:     map[string]string{envLogLevel: "error"},
			level:   xlog.LogLevelWarn,
			encoder: xlog.JSON,
			keys:    []int{3, 1, 2},
		},
		{
			name:    "xnavmap env wins over xlog env",
			env:     map[string]string{envLogLevel: "error", envXLogLevel: "warn"},
			level:   xlog.LogLevelError,
			encoder: xlog.PlainText,
			keys:    defaultKeys,
			dump:    true,
		},
		{
			name:    "unknown encoder",
			args:    []string{"--log-encoder", "yaml"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"--nope"},
			wantErr: true,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			for k, v := range tc.env {
				tt.Setenv(k, v)
			}
			cfg, err := parseConfig(tc.args)
			if tc.wantErr {
				require.Error(tt, err)
				return
			}
			require.NoError(tt, err)
			require.Equal(tt, tc.level, cfg.LogLevel)
			require.Equal(tt, tc.encoder, cfg.LogEncoder)
			require.Equal(tt, tc.keys, cfg.Keys)
			require.Equal(tt, tc.dump, cfg.Dump)
		})
	}
}

func TestRunApp(t *testing.T) {
	cfg := &config{
		LogLevel:   xlog.LogLevelError,
		LogEncoder: xlog.JSON,
		Keys:       defaultKeys,
		Dump:       true,
	}
	out := &bytes.Buffer{}
	require.NoError(t, runApp(newApp(cfg, out)))

	got := out.String()
	for _, expected := range []string{
		"keys: [1, 2, 3, 4, 5, 6, 7, 8, 9]\n",
		"firstKey = 1\n",
		"lastKey = 9\n",
		"lowerKey(1) = <none>\n",
		"floorKey(5) = 5\n",
		"higherKey(5) = 6\n",
		"higherKey(9) = <none>\n",
		"get(4) after update = v4_new\n",
		"remove(1) = v1\n",
		"remove(9) = v9\n",
		"remove(3) = v3\n",
		"containsKey(3) = false, size = 6\n",
		"get(100) = <nil>, present = true\n",
		"after clear: size = 0, isEmpty = true\n",
		"-- after clear\n(empty)\n",
		"bimap: {1=one, 2=two, 3=three}\n",
		"get(2) = two\n",
		"getKey(three) = 3\n",
		"after put(1, uno): {1=uno, 2=two, 3=three}, containsValue(one) = false\n",
		"removeValue(two) = 2, containsKey(2) = false\n",
		"keys: [1, 3], values: [uno, three]\n",
	} {
		require.Contains(t, got, expected)
	}
}

func TestRunAppWithoutDump(t *testing.T) {
	cfg := &config{
		LogLevel:   xlog.LogLevelError,
		LogEncoder: xlog.JSON,
		Keys:       []int{2, 1},
	}
	out := &bytes.Buffer{}
	require.NoError(t, runApp(newApp(cfg, out)))
	require.NotContains(t, out.String(), "-- after insert")
	require.Contains(t, out.String(), "keys: [1, 2]\n")
}

func TestRunAppStartFailure(t *testing.T) {
	cfg := &config{
		LogLevel:   xlog.LogLevelError,
		LogEncoder: xlog.JSON,
	}
	boom := errors.New("boom")
	app := newApp(cfg, &bytes.Buffer{}, fx.Invoke(func(lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				return boom
			},
		})
	}))
	require.ErrorIs(t, runApp(app), boom)
}
