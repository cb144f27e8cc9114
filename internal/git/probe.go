package git

import (
	"fmt"
	"strings"

	"github.com/baserock/megarepo/internal/models"
)

// SubmoduleStatus probes one submodule's materialization state by parsing the
// fixed-width `git submodule status` line: the leading byte encodes
// initialization ('-' uninitialized, ' ' or '+' initialized) and bytes 1..41
// hold the current commit
func (g *Git) SubmoduleStatus(dir, name string) (models.SubmoduleState, error) {
	output, err := g.runner.Run(dir, "git", "submodule", "status", name)
	if err != nil {
		return nil, err
	}
	return parseStatusLine(output)
}

func parseStatusLine(output []byte) (models.SubmoduleState, error) {
	line := strings.TrimRight(string(output), "\r\n")
	if len(line) < 41 {
		return nil, &ProbeFormatError{Output: line}
	}

	commit := line[1:41]
	switch line[0] {
	case '-':
		return models.Uninitialized(commit), nil
	case ' ', '+':
		return models.Initialized(commit), nil
	default:
		return nil, &ProbeFormatError{Output: line}
	}
}

// ProbeFormatError reports unrecognized `git submodule status` output. The
// engine aborts rather than act on a misread state.
type ProbeFormatError struct {
	Output string
}

func (e *ProbeFormatError) Error() string {
	return fmt.Sprintf("unexpected output for 'git submodule status': %q", e.Output)
}
