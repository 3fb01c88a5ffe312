package background

import (
	"context"
	"fmt"
	"time"

	"borsibaar/internal/logging"
	"borsibaar/internal/models"

	"github.com/go-co-op/gocron/v2"
)

const adminCoverageJob = "admin-coverage-report"

// OrganizationSource lists organizations whose members include no ADMIN.
type OrganizationSource interface {
	WithoutAdmin(ctx context.Context) ([]*models.Organization, error)
}

// JobScheduler runs the periodic maintenance jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	orgs      OrganizationSource
	log       logging.Logger
}

// NewJobScheduler creates a scheduler with the admin coverage report
// registered at the given interval.
func NewJobScheduler(orgs OrganizationSource, interval time.Duration, log logging.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		orgs:      orgs,
		log:       log.With("component", "jobs"),
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.ReportAdminCoverage, context.Background()),
		gocron.WithName(adminCoverageJob),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("register %s: %w", adminCoverageJob, err)
	}

	return js, nil
}

func (js *JobScheduler) Start() {
	js.log.Info(context.Background(), "starting background job scheduler", "jobs", len(js.scheduler.Jobs()))
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	js.log.Info(context.Background(), "stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// ReportAdminCoverage logs a warning for every organization that has members
// but no admin. It never modifies data.
func (js *JobScheduler) ReportAdminCoverage(ctx context.Context) error {
	orgs, err := js.orgs.WithoutAdmin(ctx)
	if err != nil {
		js.log.Error(ctx, "admin coverage report failed", "error", err)
		return err
	}

	for _, org := range orgs {
		js.log.Warn(ctx, "organization has no admin", "organization_id", org.ID, "organization", org.Name)
	}
	js.log.Info(ctx, "admin coverage report completed", "without_admin", len(orgs))
	return nil
}
