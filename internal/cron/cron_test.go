package cron

import (
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	cronv3 "github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/kubernetes"

	"github.com/velog-io/velog-api/config"
	cron_config "github.com/velog-io/velog-api/internal/cron/config"
	"github.com/velog-io/velog-api/internal/logger"
	"github.com/velog-io/velog-api/internal/metrics"
	"github.com/velog-io/velog-api/internal/repository/inmemory"
	"github.com/velog-io/velog-api/services/series"
)

type mockKubernetesInterface struct {
	kubernetes.Interface
	mock.Mock
}

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func TestNewCronManager(t *testing.T) {
	cfg := &config.Config{AppConfig: &config.AppConfig{}}
	log := getLogger()
	k8s := &mockKubernetesInterface{}

	cm := NewCronManager(cfg, log, k8s, nil)

	assert.NotNil(t, cm)
	assert.Equal(t, cfg, cm.cfg)
	assert.Equal(t, log, cm.log)
	assert.Equal(t, k8s, cm.k8s)
	assert.NotNil(t, cm.jobIDs)
}

func TestCronManager_RegisterJobs(t *testing.T) {
	cm := NewCronManager(&config.Config{}, getLogger(), nil, nil)
	c := cronv3.New(cronv3.WithSeconds())

	err := cm.registerJobs(c, cron_config.Config{
		CronScheduleHeartbeat:           "0 * * * * *",
		CronScheduleSeriesOrderingAudit: "0 */30 * * * *",
	})
	require.NoError(t, err)
	assert.Len(t, cm.jobIDs, 2)
	assert.Len(t, c.Entries(), 2)

	err = cm.registerJobs(cronv3.New(cronv3.WithSeconds()), cron_config.Config{CronScheduleSeriesOrderingAudit: "not a schedule"})
	assert.Error(t, err)
}

func TestCronManager_StartCronInLocalMode(t *testing.T) {
	os.Setenv("CRON_SCHEDULE_HEARTBEAT", "")
	os.Setenv("CRON_SCHEDULE_SERIES_ORDERING_AUDIT", "0 0 * * * *")
	defer os.Unsetenv("CRON_SCHEDULE_HEARTBEAT")
	defer os.Unsetenv("CRON_SCHEDULE_SERIES_ORDERING_AUDIT")

	cm := NewCronManager(&config.Config{}, getLogger(), nil, nil)
	require.NoError(t, cm.Start("pod", "default"))
	defer cm.Stop()

	require.NotNil(t, cm.cron)
	assert.Contains(t, cm.jobIDs, "series_ordering_audit")
}

func TestCronManager_AuditSeriesOrdering(t *testing.T) {
	store := inmemory.NewStore()
	owner := store.AddUser("owner")
	broken := store.AddSeries(owner.ID, "broken", "broken")
	healthy := store.AddSeries(owner.ID, "healthy", "healthy")
	for i, index := range []int{1, 3} {
		post := store.AddPost(owner.ID, "broken-"+string(rune('a'+i)), nil)
		store.AddSeriesPost(broken.ID, post.ID, index)
	}
	post := store.AddPost(owner.ID, "healthy", nil)
	store.AddSeriesPost(healthy.ID, post.ID, 1)

	m := metrics.NewMetrics()
	seriesService := series.NewSeriesService(store.Repositories(), inmemory.NewEventRecorder(), m, logger.NewNopLogger())
	cm := NewCronManager(&config.Config{}, logger.NewNopLogger(), nil, seriesService)

	cm.auditSeriesOrdering()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.OrderingIssues))
}

func TestCronManager_Stop(t *testing.T) {
	cm := NewCronManager(&config.Config{}, getLogger(), &mockKubernetesInterface{}, nil)

	mockCron := cronv3.New()
	mockCron.Start()
	cm.cron = mockCron

	cm.Stop()
	cm.Stop()

	select {
	case <-cm.stopCh:
		// Channel is closed as expected
	default:
		t.Error("Stop channel was not closed")
	}
}
