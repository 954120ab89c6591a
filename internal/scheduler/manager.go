// Package scheduler runs periodic background jobs.
package scheduler

import (
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// Job is a unit of periodic work
type Job interface {
	Name() string
	Definition() gocron.JobDefinition
	Execute()
}

// Manager owns the gocron scheduler and the jobs registered on it
type Manager struct {
	scheduler gocron.Scheduler
	logger    zerolog.Logger
}

// NewManager creates a scheduler that is not yet started
func NewManager(logger zerolog.Logger) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Manager{scheduler: s, logger: logger}, nil
}

// Register adds a job. A run still in progress when the next tick fires is skipped.
func (m *Manager) Register(job Job) error {
	_, err := m.scheduler.NewJob(
		job.Definition(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.Name()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", job.Name(), err)
	}
	m.logger.Info().Str("job", job.Name()).Msg("Job registered")
	return nil
}

// Jobs returns the names of the registered jobs
func (m *Manager) Jobs() []string {
	jobs := m.scheduler.Jobs()
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name())
	}
	return names
}

// Start begins running registered jobs
func (m *Manager) Start() {
	m.scheduler.Start()
	m.logger.Info().Msg("Scheduler started")
}

// Stop waits for running jobs and shuts the scheduler down
func (m *Manager) Stop() error {
	if err := m.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown scheduler: %w", err)
	}
	m.logger.Info().Msg("Scheduler stopped")
	return nil
}
