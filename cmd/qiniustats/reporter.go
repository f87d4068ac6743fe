package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// cliReporter renders sync progress for interactive runs. Реализует
// sync.Reporter.
type cliReporter struct {
	bar *progressbar.ProgressBar
}

func (r *cliReporter) Section(name string, steps int) {
	r.finish()
	fmt.Println()
	fmt.Println(name)
	r.bar = progressbar.NewOptions(steps,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *cliReporter) Step(msg string) {
	if r.bar != nil {
		r.bar.Describe(msg)
		_ = r.bar.Add(1)
	}
}

func (r *cliReporter) Text(msg string) {
	fmt.Println(msg)
}

func (r *cliReporter) Error(msg string) {
	fmt.Fprintln(os.Stderr, "error: "+msg)
}

func (r *cliReporter) finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}
