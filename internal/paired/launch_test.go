package paired

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wagiedev/paired-process-go/internal/channel"
	"github.com/wagiedev/paired-process-go/internal/config"
	"github.com/wagiedev/paired-process-go/internal/errors"
	"github.com/wagiedev/paired-process-go/internal/platform"
)

// openFDs counts this process's open descriptors, or -1 where unsupported.
func openFDs(t *testing.T) int {
	t.Helper()

	if runtime.GOOS != "linux" {
		return -1
	}

	entries, err := os.ReadDir("/proc/self/fd")
	require.NoError(t, err)

	return len(entries)
}

func TestLaunch_EmptyPath(t *testing.T) {
	p, err := Launch("", nil, &config.Options{Logger: testLogger()})
	require.Nil(t, p)
	require.ErrorIs(t, err, errors.ErrInvalidArgument)
	require.ErrorIs(t, err, errors.ErrEmptyPath)
}

func TestLaunch_MissingExecutable(t *testing.T) {
	endpoints := channel.OpenEndpoints()
	fds := openFDs(t)

	missing := filepath.Join(t.TempDir(), "does-not-exist")

	p, err := Launch(missing, []string{"does-not-exist"}, &config.Options{Logger: testLogger()})
	require.Nil(t, p)
	require.ErrorIs(t, err, errors.ErrSpawnFailed)
	require.Equal(t, errors.SpawnFailed, errors.CodeOf(err))

	_, ok := stderrors.AsType[*platform.NotFoundError](err)
	require.True(t, ok, "expected NotFoundError in chain, got %v", err)

	require.Equal(t, endpoints, channel.OpenEndpoints())

	if fds >= 0 {
		require.Equal(t, fds, openFDs(t))
	}
}

func TestLaunch_MissingFromPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Launch("no-such-program-anywhere", nil, &config.Options{Logger: testLogger()})
	require.ErrorIs(t, err, errors.ErrSpawnFailed)
}

func TestLaunch_StartFailureClosesEndpoints(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	endpoints := channel.OpenEndpoints()
	fds := openFDs(t)
	boom := stderrors.New("exec format error")

	p, err := Launch(exe, nil, &config.Options{
		Logger:  testLogger(),
		Backend: &faultBackend{Backend: platform.Default(), startErr: boom},
	})
	require.Nil(t, p)
	require.ErrorIs(t, err, errors.ErrSpawnFailed)
	require.ErrorIs(t, err, boom)
	require.Equal(t, endpoints, channel.OpenEndpoints())

	if fds >= 0 {
		require.Equal(t, fds, openFDs(t))
	}
}

func TestLaunch_PipeFailure(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	boom := stderrors.New("pipe failed")

	tests := []struct {
		name      string
		failAt    int
		exhausted bool
		want      error
	}{
		{name: "first pipe", failAt: 1, want: errors.ErrChannelCreationFailed},
		{name: "second pipe", failAt: 2, want: errors.ErrChannelCreationFailed},
		{name: "descriptors exhausted", failAt: 2, exhausted: true, want: errors.ErrResourceExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoints := channel.OpenEndpoints()
			fds := openFDs(t)

			p, err := Launch(exe, nil, &config.Options{
				Logger: testLogger(),
				Backend: &faultBackend{
					Backend:    platform.Default(),
					failPipeAt: tt.failAt,
					pipeErr:    boom,
					exhausted:  tt.exhausted,
				},
			})
			require.Nil(t, p)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, boom)
			require.Equal(t, endpoints, channel.OpenEndpoints())

			if fds >= 0 {
				require.Equal(t, fds, openFDs(t))
			}
		})
	}
}

func TestLaunch_Active(t *testing.T) {
	endpoints := channel.OpenEndpoints()

	p := launchHelper(t, "echochild", nil)

	require.Equal(t, StateActive, p.State())
	require.Positive(t, p.Pid())
	require.Len(t, p.ID(), 26)
	require.False(t, p.ListenerRunning())
	require.Equal(t, -1, p.ExitCode())

	// Only the controller-side endpoints remain open.
	require.Equal(t, endpoints+2, channel.OpenEndpoints())

	require.NoError(t, p.Destroy(context.Background()))
	require.Equal(t, StateTerminated, p.State())
	require.Equal(t, endpoints, channel.OpenEndpoints())
}

func TestLaunch_DistinctIDs(t *testing.T) {
	a := launchHelper(t, "echochild", nil)
	b := launchHelper(t, "echochild", nil)

	require.NotEqual(t, a.ID(), b.ID())
	require.NotEqual(t, a.Pid(), b.Pid())
}
