package proc

import (
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command in a working directory and returns its
// combined output. Strategies never touch os/exec directly so their decision
// logic can be tested against a RecordingRunner.
type Runner interface {
	Run(dir string, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec, inheriting the parent environment
// (so git picks up the SSH agent and credential helpers)
type ExecRunner struct{}

// Run executes the command in dir and returns its combined output
func (ExecRunner) Run(dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, &CommandError{
			Argv:   append([]string{name}, args...),
			Output: strings.TrimSpace(string(output)),
			Err:    err,
		}
	}
	return output, nil
}

// CommandError reports a failed external command with its captured output
type CommandError struct {
	Argv   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s: %v", strings.Join(e.Argv, " "), e.Err)
	}
	return fmt.Sprintf("%s: %s", strings.Join(e.Argv, " "), e.Output)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
