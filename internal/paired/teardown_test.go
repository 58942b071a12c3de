package paired

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wagiedev/paired-process-go/internal/channel"
	"github.com/wagiedev/paired-process-go/internal/config"
)

func TestDestroy_WellBehavedSubordinate(t *testing.T) {
	p := launchHelper(t, "echochild", nil)

	c := &collector{}
	require.NoError(t, p.RegisterListener(c.callback))

	start := time.Now()

	require.NoError(t, p.Destroy(context.Background()))
	require.Less(t, time.Since(start), config.DefaultStopTimeout)

	require.Equal(t, StateTerminated, p.State())
	require.False(t, p.ListenerRunning())

	select {
	case <-p.Exited():
	default:
		t.Fatal("subordinate still running after Destroy")
	}
}

func TestDestroy_IsSafeToRepeat(t *testing.T) {
	p := launchHelper(t, "echochild", nil)

	require.NoError(t, p.Destroy(context.Background()))
	require.NoError(t, p.Destroy(context.Background()))
	require.Equal(t, StateTerminated, p.State())
}

func TestDestroy_WithoutListener(t *testing.T) {
	endpoints := channel.OpenEndpoints()

	p := launchHelper(t, "greeter", nil)

	// The unread greeting stays in the pipe; teardown must not care.
	require.NoError(t, p.Destroy(context.Background()))
	require.Equal(t, endpoints, channel.OpenEndpoints())

	select {
	case <-p.ListenerDone():
	default:
		t.Fatal("ListenerDone must be closed when no listener was registered")
	}
}

func TestDestroy_KillsUnresponsiveSubordinate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("termination requests cannot be ignored on Windows")
	}

	endpoints := channel.OpenEndpoints()

	p := launchHelper(t, "stubborn", &config.Options{StopTimeout: 200 * time.Millisecond})

	c := &collector{}
	require.NoError(t, p.RegisterListener(c.callback))

	// Let the helper install its signal disposition.
	time.Sleep(200 * time.Millisecond)

	start := time.Now()

	require.NoError(t, p.Destroy(context.Background()))
	require.Less(t, time.Since(start), 3*time.Second)

	require.Equal(t, StateTerminated, p.State())
	require.False(t, p.ListenerRunning())
	require.Equal(t, -1, p.ExitCode())
	require.Equal(t, endpoints, channel.OpenEndpoints())
}

func TestDestroy_JoinsListenerBlockedByInheritedOutput(t *testing.T) {
	p := launchHelper(t, "holder", &config.Options{ListenerTimeout: 200 * time.Millisecond})

	c := &collector{}
	require.NoError(t, p.RegisterListener(c.callback))

	select {
	case <-p.Exited():
	case <-time.After(5 * time.Second):
		t.Fatal("holder did not exit")
	}

	// A grandchild still holds the write end, so no EOF arrives.
	require.True(t, p.ListenerRunning())

	start := time.Now()

	require.NoError(t, p.Destroy(context.Background()))
	require.Less(t, time.Since(start), 2*time.Second)

	require.False(t, p.ListenerRunning())
	require.Equal(t, StateTerminated, p.State())

	select {
	case <-p.ListenerDone():
	default:
		t.Fatal("Destroy returned before the listener stopped")
	}
}

func TestDestroy_CancelledContextStillTerminates(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("termination requests cannot be ignored on Windows")
	}

	p := launchHelper(t, "stubborn", nil)

	c := &collector{}
	require.NoError(t, p.RegisterListener(c.callback))

	time.Sleep(200 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()

	require.NoError(t, p.Destroy(ctx))
	require.Less(t, time.Since(start), config.DefaultStopTimeout+config.DefaultListenerTimeout)

	require.Equal(t, StateTerminated, p.State())
	require.False(t, p.ListenerRunning())
}
