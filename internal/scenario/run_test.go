package scenario

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_HappyPath(t *testing.T) {
	r := NewRun("Chrome Desktop", &Scenario{Name: "s"})
	st, step := r.State()
	require.Equal(t, NotStarted, st)
	require.Equal(t, -1, step)

	require.NoError(t, r.Start())
	require.NoError(t, r.Advance(0))
	require.NoError(t, r.Advance(1))
	st, step = r.State()
	require.Equal(t, Running, st)
	require.Equal(t, 1, step)

	require.NoError(t, r.Pass())
	st, _ = r.State()
	require.Equal(t, Passed, st)
	require.True(t, st.Terminal())
}

func TestRun_TerminalStatesAreFinal(t *testing.T) {
	r := NewRun("p", &Scenario{Name: "s"})
	require.NoError(t, r.Start())
	require.NoError(t, r.Fail(errors.New("boom")))

	require.Error(t, r.Pass())
	require.Error(t, r.Fail(errors.New("again")))
	require.Error(t, r.Advance(3))
	require.Error(t, r.Start())
	require.EqualError(t, r.Reason(), "boom")
}

func TestRun_FailBeforeStart(t *testing.T) {
	r := NewRun("p", &Scenario{Name: "s"})
	require.NoError(t, r.Fail(errors.New("browser launch failed")))
	st, _ := r.State()
	require.Equal(t, Failed, st)
}

func TestRun_PassRequiresRunning(t *testing.T) {
	r := NewRun("p", &Scenario{Name: "s"})
	require.Error(t, r.Pass())
	require.Error(t, r.Advance(0))
}

func TestRun_ConcurrentReads(t *testing.T) {
	r := NewRun("p", &Scenario{Name: "s"})
	require.NoError(t, r.Start())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.State()
			}
		}()
	}
	for i := 0; i < 100; i++ {
		require.NoError(t, r.Advance(i))
	}
	wg.Wait()
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "passed", Passed.String())
	require.Equal(t, "status(9)", Status(9).String())
}
