package cron

import "context"

// Job is one maintenance task the register runs on the housekeeping cadence,
// such as refreshing the history backup snapshot. Run is expected to be
// idempotent: the ticker fires far more often than most jobs have work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry holds maintenance jobs in execution order. It is assembled at
// boot and read-only afterwards; a cycle walks the jobs front to back.
type Registry struct {
	jobs []Job
}

// NewRegistry builds a registry from the provided jobs. Nil entries are
// skipped so callers can pass conditionally-constructed jobs directly.
func NewRegistry(jobs ...Job) *Registry {
	registry := &Registry{}
	for _, job := range jobs {
		registry.Register(job)
	}
	return registry
}

// Register appends a job. Nil jobs are ignored.
func (r *Registry) Register(job Job) {
	if job == nil {
		return
	}
	r.jobs = append(r.jobs, job)
}

// Jobs returns a copy of the job list in registration order.
func (r *Registry) Jobs() []Job {
	jobs := make([]Job, len(r.jobs))
	copy(jobs, r.jobs)
	return jobs
}
