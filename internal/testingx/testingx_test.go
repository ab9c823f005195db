package testingx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.eggybyte.com/jerseykit/internal/execenv"
)

func TestMockLogger(t *testing.T) {
	logger := NewMockLogger(t)

	logger.Info("tool installed", "tool", "maven")
	logger.Error(errors.New("boom"), "deploy failed")

	entries := logger.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.EqualError(t, entries[1].Error, "boom")
	logger.AssertLogged("ERROR", "deploy failed")

	logger.Clear()
	assert.Empty(t, logger.Entries())
}

func TestMockLoggerWithSharesRecording(t *testing.T) {
	logger := NewMockLogger(t)

	logger.With("tool", "jdk").Debug("probe finished", "found", true)

	entries := logger.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, []any{"tool", "jdk", "found", true}, entries[0].Fields)
}

func TestFakeExecutorScripting(t *testing.T) {
	fake := NewFakeExecutor().Miss("asadmin").Fail("mvn archetype:generate", 1)
	env := &execenv.Env{WorkDir: "/work", Path: []string{"/usr/bin"}}
	ctx := context.Background()

	_, err := fake.Run(ctx, env, "asadmin", "version")
	assert.Error(t, err)

	res, err := fake.Run(ctx, env, "mvn", "archetype:generate", "-DgroupId=x")
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)

	res, err = fake.Run(ctx, env, "mvn", "-version")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)

	fake.Present("asadmin")
	_, err = fake.Run(ctx, env, "asadmin", "version")
	assert.NoError(t, err)

	assert.Equal(t, []string{
		"asadmin version",
		"mvn archetype:generate -DgroupId=x",
		"mvn -version",
		"asadmin version",
	}, fake.CommandLines())
	assert.Len(t, fake.CallsTo("mvn"), 2)
	assert.Equal(t, "/work", fake.Calls()[0].Dir)
}

func TestFakeExecutorHookSeesEnv(t *testing.T) {
	fake := NewFakeExecutor()
	var seen string
	fake.OnRun = func(env *execenv.Env, name string, _ []string) {
		seen = env.WorkDir + ":" + name
	}

	_, err := fake.Run(context.Background(), &execenv.Env{WorkDir: "/p"}, "mvn")
	require.NoError(t, err)
	assert.Equal(t, "/p:mvn", seen)
}
