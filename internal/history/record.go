package history

import (
	"time"

	"github.com/Norgate-AV/swiftdriver/internal/job"
)

// Record is one planned or executed driver invocation
type Record struct {
	// Hash is the unique identifier for this record
	// Computed from: expanded arguments + tool configuration + input contents
	Hash string `json:"hash"`

	// Invocation is the argument vector after response-file expansion
	Invocation []string `json:"invocation"`

	// WorkingDirectory the driver resolved relative paths against
	WorkingDirectory string `json:"working_directory"`

	// DriverKind is the driver identity name (swiftc, swift, ...)
	DriverKind string `json:"driver_kind"`

	// Target is the resolved target triple
	Target string `json:"target"`

	// ModuleName is the resolved module name
	ModuleName string `json:"module_name"`

	// Jobs lists the planned jobs in order
	Jobs []JobRecord `json:"jobs"`

	// Diagnostics are the planning diagnostics, rendered
	Diagnostics []string `json:"diagnostics,omitempty"`

	// Executed is false for plan-only runs
	Executed bool `json:"executed"`

	// Success indicates the plan had no errors and, when executed, every job succeeded
	Success bool `json:"success"`

	// Temporaries kept by --save-temps, relative to Scratch
	Scratch     string   `json:"scratch,omitempty"`
	Temporaries []string `json:"temporaries,omitempty"`

	// Timestamp when this record was created
	Timestamp time.Time `json:"timestamp"`
}

// JobRecord is the stored form of a planned job
type JobRecord struct {
	Kind    string   `json:"kind"`
	Tool    string   `json:"tool"`
	Command []string `json:"command"`
	Outputs []string `json:"outputs"`
}

// RecordJobs converts planned jobs for storage
func RecordJobs(jobs []*job.Job) []JobRecord {
	out := make([]JobRecord, 0, len(jobs))
	for _, j := range jobs {
		outputs := make([]string, 0, len(j.Outputs))
		for _, o := range j.Outputs {
			outputs = append(outputs, o.File.String())
		}

		out = append(out, JobRecord{
			Kind:    j.Kind.String(),
			Tool:    j.Tool.Name(),
			Command: j.Display(),
			Outputs: outputs,
		})
	}

	return out
}
