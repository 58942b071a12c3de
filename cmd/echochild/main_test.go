package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := newRootCommand()

	var stdout, stderr bytes.Buffer

	cmd.SetIn(strings.NewReader("HOLA\nhello\nSALIR\nPING\n"))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--verbose"})

	require.NoError(t, cmd.Execute())
	require.Equal(t, "HOLA PADRE\nECO: hello\nADIOS\n", stdout.String())
	require.Contains(t, stderr.String(), "Exit requested")
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"extra"})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	require.Error(t, cmd.Execute())
}
