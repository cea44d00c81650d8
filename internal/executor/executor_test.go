package executor

import (
	"github.com/goswamishashwatpuri/nextract/internal/browser"
)

// testEnv is a minimal Environment for exercising executors directly.
type testEnv struct {
	inputs  map[string]string
	outputs map[string]string
	logs    []string
}

func newTestEnv(inputs map[string]string) *testEnv {
	return &testEnv{
		inputs:  inputs,
		outputs: make(map[string]string),
	}
}

func (e *testEnv) GetInput(name string) string       { return e.inputs[name] }
func (e *testEnv) SetOutput(name, value string)      { e.outputs[name] = value }
func (e *testEnv) Browser() *browser.Browser         { return nil }
func (e *testEnv) SetBrowser(*browser.Browser)       {}
func (e *testEnv) Page() *browser.Page               { return nil }
func (e *testEnv) SetPage(*browser.Page)             {}
func (e *testEnv) Log() LogSink                      { return e }
func (e *testEnv) Info(msg string)                   { e.logs = append(e.logs, msg) }
func (e *testEnv) Error(msg string)                  { e.logs = append(e.logs, msg) }
