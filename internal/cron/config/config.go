package cron_config

type Config struct {
	// Heartbeat check, every minute
	CronScheduleHeartbeat string `env:"CRON_SCHEDULE_HEARTBEAT" envDefault:"0 * * * * *"`
	// Series ordering audit, every 30 minutes
	CronScheduleSeriesOrderingAudit string `env:"CRON_SCHEDULE_SERIES_ORDERING_AUDIT" envDefault:"0 */30 * * * *"`
}
