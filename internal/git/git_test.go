package git

import (
	"errors"
	"strings"
	"testing"

	"github.com/baserock/megarepo/internal/proc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmoduleAddCommand(t *testing.T) {
	runner := &proc.RecordingRunner{}

	err := New(runner).SubmoduleAdd("/aggregate", "git://example.org/perl", "perl", "baserock/morph")
	require.NoError(t, err)

	require.Len(t, runner.Calls, 1)
	assert.Equal(t,
		"git submodule add --branch baserock/morph --name perl git://example.org/perl",
		strings.Join(runner.Calls[0].Argv, " "))
}

func TestSubtreePullSuppliesMergeMessage(t *testing.T) {
	runner := &proc.RecordingRunner{}

	err := New(runner).SubtreePull("/aggregate", "perl", "git://example.org/perl", "master")
	require.NoError(t, err)

	require.Len(t, runner.Calls, 1)
	assert.Contains(t, runner.Calls[0].Argv, "-m")
}

func TestCommitAllSuccess(t *testing.T) {
	runner := &proc.RecordingRunner{}

	committed, err := New(runner).CommitAll("/aggregate", "Add/update submodules")
	require.NoError(t, err)
	assert.True(t, committed)

	require.Len(t, runner.Calls, 1)
	assert.Equal(t,
		"git commit --all --message Add/update submodules",
		strings.Join(runner.Calls[0].Argv, " "))
}

func TestCommitAllNothingToCommitIsBenign(t *testing.T) {
	output := "On branch master\nnothing to commit, working tree clean\n"
	runner := &proc.RecordingRunner{
		Stub: func(dir string, argv []string) ([]byte, error) {
			return []byte(output), &proc.CommandError{
				Argv:   argv,
				Output: strings.TrimSpace(output),
				Err:    errors.New("exit status 1"),
			}
		},
	}

	committed, err := New(runner).CommitAll("/aggregate", "Add/update submodules")
	require.NoError(t, err)
	assert.False(t, committed)
}

func TestCommitAllRealFailurePropagates(t *testing.T) {
	runner := &proc.RecordingRunner{
		Stub: func(dir string, argv []string) ([]byte, error) {
			return nil, &proc.CommandError{
				Argv:   argv,
				Output: "fatal: unable to write new index file",
				Err:    errors.New("exit status 128"),
			}
		},
	}

	_, err := New(runner).CommitAll("/aggregate", "Add/update submodules")
	assert.Error(t, err)
}
