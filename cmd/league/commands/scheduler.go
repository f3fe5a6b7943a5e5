package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reellords/studio-league/backend/internal/scheduler"
	"github.com/reellords/studio-league/backend/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage the weekly job scheduler",
	Long: `Start the scheduler or manage its jobs.

Registered jobs:
- revenue_ingest: Tuesday 06:00 (pull the closed week's box office chart)
- weekly_compute: Tuesday 08:00 (score the closed week for active seasons)

Subcommands:
  start   - start the scheduler daemon
  list    - list registered jobs
  run     - run one job immediately
  status  - show recent job results

Example:
  go run ./cmd/league scheduler start
  go run ./cmd/league scheduler run weekly_compute`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler",
		RunE:  runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run one job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}

	schedulerStatusCmd = &cobra.Command{
		Use:   "status [job_name]",
		Short: "Show recent job results",
		Args:  cobra.ExactArgs(1),
		RunE:  showStatus,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
	schedulerCmd.AddCommand(schedulerStatusCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	app, sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer app.Close()

	sched.Start()

	fmt.Println("Scheduler started")
	fmt.Println("Registered jobs:")
	for _, jobName := range sched.Jobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	app, sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer app.Close()

	fmt.Println("Registered jobs:")
	for _, jobName := range sched.Jobs() {
		fmt.Printf("  - %s\n", jobName)
	}

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	app, sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer app.Close()

	fmt.Printf("Running job: %s\n", jobName)
	if err := sched.RunJob(jobName); err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	// RunJob is asynchronous; block so the process outlives the run
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	fmt.Println("Job started, press Ctrl+C to exit")
	<-quit

	return nil
}

func showStatus(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	app, sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer app.Close()

	history, err := sched.History(jobName)
	if err != nil {
		return err
	}

	results := history.GetLatestResults(10)
	if len(results) == 0 {
		fmt.Printf("No recorded runs for %s\n", jobName)
		return nil
	}

	fmt.Printf("Recent runs of %s:\n", jobName)
	for _, r := range results {
		status := "ok"
		if !r.Success {
			status = "failed: " + r.Error
		}
		fmt.Printf("  %s  %-8s  %s\n",
			r.StartTime.Format("2006-01-02 15:04:05"), r.Duration.Round(time.Millisecond), status)
	}

	return nil
}

func initScheduler() (*app, *scheduler.Scheduler, error) {
	app, err := newApp()
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(app.logger)

	if err := sched.AddJob(jobs.NewRevenueIngestJob(app.ingest, app.logger)); err != nil {
		app.Close()
		return nil, nil, err
	}
	if err := sched.AddJob(jobs.NewWeeklyComputeJob(app.scoring, app.leagues, app.seasons, app.logger)); err != nil {
		app.Close()
		return nil, nil, err
	}

	return app, sched, nil
}
