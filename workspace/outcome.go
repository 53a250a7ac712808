package workspace

import (
	"fmt"
	"time"

	"github.com/Capswan/cli-gitspace/config"
	"github.com/Capswan/cli-gitspace/errors"
)

// Status is the result of fetching one repository.
type Status int

const (
	// StatusSkipped means the destination was already populated.
	StatusSkipped Status = iota
	// StatusCloned means the repository was cloned into its destination.
	StatusCloned
	// StatusFailed means the repository could not be cloned. Outcome.Err says why.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusCloned:
		return "cloned"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is the per-repository result of a sync run.
type Outcome struct {
	Repository  config.Repository
	Status      Status
	Destination string
	// Reason is a short human readable explanation for skips and failures.
	Reason   string
	Err      error
	Duration time.Duration
}

func skipped(repo config.Repository, dest, reason string) Outcome {
	return Outcome{Repository: repo, Status: StatusSkipped, Destination: dest, Reason: reason}
}

func cloned(repo config.Repository, dest string) Outcome {
	return Outcome{Repository: repo, Status: StatusCloned, Destination: dest}
}

func failed(repo config.Repository, dest string, err error) Outcome {
	reason := err.Error()
	var pe errors.PlatformError
	if errors.As(err, &pe) {
		reason = pe.Message()
	}
	return Outcome{Repository: repo, Status: StatusFailed, Destination: dest, Reason: reason, Err: err}
}

// Report is the result of one sync run.
type Report struct {
	// Outcomes holds one entry per configured repository, in config order.
	Outcomes []Outcome
	// Links holds the projected symlinks when projection was requested.
	Links    []SymlinkEntry
	Duration time.Duration
}

// Count returns the number of outcomes with status s.
func (r Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Failed returns the failed outcomes.
func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			out = append(out, o)
		}
	}
	return out
}

// Err joins the errors of all failed outcomes and link entries, or returns nil.
func (r Report) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Repository, o.Err))
		}
	}
	for _, l := range r.Links {
		if l.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", l.Destination, l.Err))
		}
	}
	return errors.Join(errs...)
}
