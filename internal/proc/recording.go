package proc

// Call is one recorded command invocation
type Call struct {
	Dir  string
	Argv []string
}

// RecordingRunner is a Runner for tests: it records every command and answers
// from a stub instead of spawning processes
type RecordingRunner struct {
	Calls []Call
	// Stub produces the output and error for each call. When nil every
	// command succeeds with empty output.
	Stub func(dir string, argv []string) ([]byte, error)
}

// Run records the call and answers from the stub
func (r *RecordingRunner) Run(dir string, name string, args ...string) ([]byte, error) {
	argv := append([]string{name}, args...)
	r.Calls = append(r.Calls, Call{Dir: dir, Argv: argv})
	if r.Stub != nil {
		return r.Stub(dir, argv)
	}
	return nil, nil
}

// Argvs returns just the argv of every recorded call, for sequence assertions
func (r *RecordingRunner) Argvs() [][]string {
	argvs := make([][]string, len(r.Calls))
	for i, c := range r.Calls {
		argvs[i] = c.Argv
	}
	return argvs
}
