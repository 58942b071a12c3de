package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wagiedev/paired-process-go/internal/echochild"
)

const helperEnv = "PAIRCTL_TEST_HELPER"

func TestMain(m *testing.M) {
	if os.Getenv(helperEnv) == "" {
		os.Exit(m.Run())
	}

	log := slog.New(slog.DiscardHandler)
	if err := echochild.Serve(log, os.Stdin, os.Stdout); err != nil {
		os.Exit(1)
	}

	os.Exit(0)
}

func helperSettings(t *testing.T) *settings {
	t.Helper()

	return &settings{
		stopTimeout:     2 * time.Second,
		listenerTimeout: 2 * time.Second,
		linger:          5 * time.Second,
		logLevel:        slog.LevelWarn,
		env:             map[string]string{helperEnv: "1"},
	}
}

func TestRelay_UntilSubordinateExits(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	var out bytes.Buffer

	in := strings.NewReader("HOLA\nPING\nSALIR\n")

	err = relay(context.Background(), slog.New(slog.DiscardHandler), helperSettings(t), []string{exe}, in, &out)
	require.NoError(t, err)
	require.Equal(t, "HOLA PADRE\nPONG\nADIOS\n", out.String())
}

func TestRelay_EndOfInput(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	s := helperSettings(t)
	s.linger = 200 * time.Millisecond

	var out bytes.Buffer

	start := time.Now()
	err = relay(context.Background(), slog.New(slog.DiscardHandler), s, []string{exe}, strings.NewReader(""), &out)
	require.NoError(t, err)
	require.Empty(t, out.String())
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestRelay_Cancelled(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw, err := os.Pipe()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = pw.Close()
		_ = pr.Close()
	})

	err = relay(ctx, slog.New(slog.DiscardHandler), helperSettings(t), []string{exe}, pr, &bytes.Buffer{})
	require.NoError(t, err)
}

func TestRelay_LaunchFailure(t *testing.T) {
	err := relay(context.Background(), slog.New(slog.DiscardHandler), helperSettings(t),
		[]string{"/nonexistent/pairctl-subordinate"}, strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
}

func TestRunCommand_ExplicitConfigMissing(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--config", "/nonexistent/pairctl.toml", "run", "--", "true"})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	require.ErrorContains(t, cmd.Execute(), "read config")
}
