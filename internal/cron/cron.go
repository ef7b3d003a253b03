package cron

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v6"
	cronv3 "github.com/robfig/cron/v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/leaderelection"
	"k8s.io/client-go/tools/leaderelection/resourcelock"

	"github.com/velog-io/velog-api/config"
	"github.com/velog-io/velog-api/interfaces"
	cron_config "github.com/velog-io/velog-api/internal/cron/config"
	"github.com/velog-io/velog-api/internal/logger"
	"github.com/velog-io/velog-api/internal/tracing"
	"github.com/velog-io/velog-api/internal/utils"
)

// CONSTANTS
const (
	// GroupSeries is the group for series related jobs
	GroupSeries = "series"

	// LeaseDuration is how long a lease lasts before needing renewal
	LeaseDuration = 15 * time.Second
	// RenewDeadline is how long a leader has to renew its lease
	RenewDeadline = 10 * time.Second
	// RetryPeriod is how long to wait between leadership attempts
	RetryPeriod = 2 * time.Second
)

// LOCK MANAGEMENT
var jobLocks = struct {
	sync.Mutex
	locks map[string]*sync.Mutex
}{
	locks: map[string]*sync.Mutex{
		GroupSeries: new(sync.Mutex),
	},
}

type CronManager struct {
	cfg      *config.Config
	log      logger.Logger
	cron     *cronv3.Cron
	k8s      kubernetes.Interface
	stopCh   chan struct{}
	stopOnce sync.Once
	jobIDs   map[string]cronv3.EntryID
	series   interfaces.SeriesService
}

func NewCronManager(cfg *config.Config, log logger.Logger, k8s kubernetes.Interface, series interfaces.SeriesService) *CronManager {
	return &CronManager{
		cfg:    cfg,
		log:    log,
		k8s:    k8s,
		stopCh: make(chan struct{}),
		jobIDs: make(map[string]cronv3.EntryID),
		series: series,
	}
}

// Start initializes and starts the cron manager with leader election
// If k8s is nil, it will start in local mode without leader election
func (cm *CronManager) Start(podName, namespace string) error {
	if cm.k8s == nil || os.Getenv("LOCAL_DEV") == "true" {
		cm.log.Info("Starting cron manager in local mode")
		return cm.StartCron()
	}

	lock := &resourcelock.LeaseLock{
		LeaseMeta: metav1.ObjectMeta{
			Name:      "velog-api-cron-leader",
			Namespace: namespace,
		},
		Client: cm.k8s.CoordinationV1(),
		LockConfig: resourcelock.ResourceLockConfig{
			Identity: podName,
		},
	}

	errCh := make(chan error, 1)

	go func() {
		le, err := leaderelection.NewLeaderElector(leaderelection.LeaderElectionConfig{
			Lock:            lock,
			ReleaseOnCancel: true,
			LeaseDuration:   LeaseDuration,
			RenewDeadline:   RenewDeadline,
			RetryPeriod:     RetryPeriod,
			Callbacks: leaderelection.LeaderCallbacks{
				OnStartedLeading: func(ctx context.Context) {
					if err := cm.StartCron(); err != nil {
						cm.log.Errorf("Could not start crons: %v", err)
					}
				},
				OnStoppedLeading: func() {
					cm.log.Info("Leader lost - stopping crons")
					cm.Stop()
				},
				OnNewLeader: func(identity string) {
					cm.log.Infof("New leader elected: %s", identity)
				},
			},
		})
		if err != nil {
			errCh <- err
			return
		}

		le.Run(context.Background())
	}()

	// Wait briefly to see if leader election fails immediately
	select {
	case err := <-errCh:
		cm.log.Warnf("Leader election failed, falling back to local mode: %v", err)
		return cm.StartCron()
	case <-time.After(5 * time.Second):
	}

	return nil
}

// Stop gracefully stops the cron manager
func (cm *CronManager) Stop() {
	cm.stopOnce.Do(func() {
		if cm.cron != nil {
			cm.log.Info("Stopping cron manager")
			ctx := cm.cron.Stop()
			// Wait for jobs to finish
			<-ctx.Done()
		}
		close(cm.stopCh)
	})
}

// registerJobs adds all cron jobs to the scheduler
func (cm *CronManager) registerJobs(c *cronv3.Cron, cronConfig cron_config.Config) error {
	if cronConfig.CronScheduleHeartbeat != "" {
		podName := os.Getenv("POD_NAME")
		if podName == "" {
			podName = "local"
		}
		id, err := c.AddFunc(cronConfig.CronScheduleHeartbeat, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			cm.log.Infof("Cron heartbeat from pod: %s", podName)
		})
		if err != nil {
			return err
		}
		cm.jobIDs["heartbeat"] = id
		cm.log.Infof("Registered heartbeat job with schedule: %s", cronConfig.CronScheduleHeartbeat)
	}

	if cronConfig.CronScheduleSeriesOrderingAudit != "" {
		id, err := c.AddFunc(cronConfig.CronScheduleSeriesOrderingAudit, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			jobLocks.locks[GroupSeries].Lock()
			defer jobLocks.locks[GroupSeries].Unlock()
			cm.auditSeriesOrdering()
		})
		if err != nil {
			return err
		}
		cm.jobIDs["series_ordering_audit"] = id
		cm.log.Infof("Registered series ordering audit job with schedule: %s", cronConfig.CronScheduleSeriesOrderingAudit)
	}
	return nil
}

// StartCron initializes and starts the cron scheduler
func (cm *CronManager) StartCron() error {
	cm.log.Info("Starting cron manager")

	var cronConfig cron_config.Config
	if err := env.Parse(&cronConfig); err != nil {
		return err
	}

	// Seconds field enabled, overlapping runs skipped
	c := cronv3.New(
		cronv3.WithSeconds(),
		cronv3.WithChain(
			cronv3.SkipIfStillRunning(cronv3.DefaultLogger),
			cronv3.Recover(cronv3.DefaultLogger),
		),
	)
	if err := cm.registerJobs(c, cronConfig); err != nil {
		return err
	}
	c.Start()
	cm.cron = c
	return nil
}

// auditSeriesOrdering logs every series whose indexes are not exactly {1..n}.
func (cm *CronManager) auditSeriesOrdering() {
	cm.log.Info("Running series ordering audit")

	ctx := utils.WithCustomContext(context.Background(), &utils.CustomContext{AppSource: config.AppName})
	span, ctx := tracing.StartTracerSpan(ctx, "CronManager.auditSeriesOrdering")
	defer span.Finish()
	tracing.TagComponentCronJob(span)

	issues, err := cm.series.AuditOrdering(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		cm.log.Errorf("Failed to audit series ordering: %v", err)
		return
	}

	for _, issue := range issues {
		cm.log.Warnf("Series %s has non-contiguous indexes %v (missing %v, duplicates %v)",
			issue.SeriesID, issue.Indexes, issue.Missing, issue.Duplicates)
	}
	cm.log.Infof("Series ordering audit completed, %d issues", len(issues))
}
