package terraform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and replays scripted exit codes per tool command.
type fakeRunner struct {
	calls [][]string
	dirs  []string
	// exits maps a tool command (args[0]) to the exit status to return.
	exits map[string]int
	err   error
}

func (f *fakeRunner) Run(_ context.Context, dir string, args []string) (int, error) {
	f.calls = append(f.calls, args)
	f.dirs = append(f.dirs, dir)
	if f.err != nil {
		return 0, f.err
	}
	return f.exits[args[0]], nil
}

// commands returns the tool command of every recorded call, in order.
func (f *fakeRunner) commands() []string {
	out := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		out = append(out, call[0])
	}
	return out
}

// newConfigTree builds a project tree with one configuration and returns its dir.
func newConfigTree(t *testing.T, envFiles ...string) string {
	t.Helper()
	root := t.TempDir()
	configDir := filepath.Join(root, "configs", "vpc")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "variables", "environments", "dev"), 0o755))
	for _, name := range envFiles {
		require.NoError(t, os.WriteFile(filepath.Join(root, "variables", "environments", "dev", name), []byte{}, 0o644))
	}
	return configDir
}

func TestInvokeRunsFullLifecycle(t *testing.T) {
	dir := newConfigTree(t, "app.tfvars")
	runner := &fakeRunner{}
	iv := &Invoker{Runner: runner, InitOpts: []string{"-backend-config=bucket=state"}, ExtraArgs: []string{"-target=aws_vpc.main"}}

	require.NoError(t, iv.Invoke(context.Background(), "dev", "vpc", dir, "plan"))

	require.Equal(t, []string{"init", "validate", "plan"}, runner.commands())

	initCall := strings.Join(runner.calls[0], " ")
	assert.Contains(t, initCall, "-input=false")
	assert.Contains(t, initCall, "-backend-config=key=dev/vpc/terrafirm.tfstate")
	assert.Contains(t, initCall, "-backend-config=bucket=state")

	validateCall := runner.calls[1]
	require.Len(t, validateCall, 2)
	assert.Contains(t, validateCall[1], "app.tfvars")

	planCall := runner.calls[2]
	assert.Equal(t, "-target=aws_vpc.main", planCall[len(planCall)-1])

	for _, d := range runner.dirs {
		assert.Equal(t, dir, d)
	}
}

func TestInvokeEmptyVariableFileSet(t *testing.T) {
	dir := newConfigTree(t)
	runner := &fakeRunner{}
	iv := &Invoker{Runner: runner}

	require.NoError(t, iv.Invoke(context.Background(), "dev", "vpc", dir, "plan"))

	// No -var-file flags anywhere when the environment dir is empty.
	for _, call := range runner.calls {
		for _, arg := range call {
			assert.NotContains(t, arg, "-var-file")
		}
	}
}

func TestInvokeValidateFailureStopsRun(t *testing.T) {
	dir := newConfigTree(t)
	runner := &fakeRunner{exits: map[string]int{"validate": 1}}
	iv := &Invoker{Runner: runner}

	err := iv.Invoke(context.Background(), "dev", "vpc", dir, "apply")

	var failed *ValidationFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, "vpc", failed.Configuration)
	// The main command never runs after a failed validate.
	assert.Equal(t, []string{"init", "validate"}, runner.commands())
}

func TestInvokeExecutionFailure(t *testing.T) {
	dir := newConfigTree(t)
	runner := &fakeRunner{exits: map[string]int{"apply": 1}}
	iv := &Invoker{Runner: runner}

	err := iv.Invoke(context.Background(), "dev", "vpc", dir, "apply")

	var failed *ExecutionFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, "apply", failed.Command)
}

func TestInvokeExactMatchFailureContract(t *testing.T) {
	dir := newConfigTree(t)
	// Exit statuses other than 1 do not count as failure.
	runner := &fakeRunner{exits: map[string]int{"validate": 2, "plan": 3}}
	iv := &Invoker{Runner: runner}

	assert.NoError(t, iv.Invoke(context.Background(), "dev", "vpc", dir, "plan"))
}

func TestInvokeInitExitNotGated(t *testing.T) {
	dir := newConfigTree(t)
	runner := &fakeRunner{exits: map[string]int{"init": 1}}
	iv := &Invoker{Runner: runner}

	require.NoError(t, iv.Invoke(context.Background(), "dev", "vpc", dir, "plan"))
	assert.Equal(t, []string{"init", "validate", "plan"}, runner.commands())
}

func TestInvokeRemovesLocalStateSnapshot(t *testing.T) {
	dir := newConfigTree(t)
	snapshot := filepath.Join(dir, ".terraform", "terraform.tfstate")
	require.NoError(t, os.MkdirAll(filepath.Dir(snapshot), 0o755))
	require.NoError(t, os.WriteFile(snapshot, []byte("{}"), 0o644))

	iv := &Invoker{Runner: &fakeRunner{}}
	require.NoError(t, iv.Invoke(context.Background(), "dev", "vpc", dir, "plan"))

	_, err := os.Stat(snapshot)
	assert.True(t, os.IsNotExist(err))
}

func TestInvokeInitRunnerSeparation(t *testing.T) {
	dir := newConfigTree(t)
	initRunner := &fakeRunner{}
	mainRunner := &fakeRunner{}
	iv := &Invoker{Runner: mainRunner, InitRunner: initRunner}

	require.NoError(t, iv.Invoke(context.Background(), "dev", "vpc", dir, "plan"))

	assert.Equal(t, []string{"init"}, initRunner.commands())
	assert.Equal(t, []string{"validate", "plan"}, mainRunner.commands())
}

func TestBackendKey(t *testing.T) {
	assert.Equal(t, "dev/vpc/terrafirm.tfstate", BackendKey("dev", "vpc"))
}
