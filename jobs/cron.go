package jobs

import (
	"context"
	"time"

	"hotel/services"
	"hotel/services/logger"

	"github.com/robfig/cron/v3"
)

// LedgerAuditor đối chiếu cờ phòng với booking
type LedgerAuditor interface {
	Audit(ctx context.Context) ([]services.Mismatch, error)
}

// AuditJob chạy một lần audit, có timeout riêng để không chồng lên lần chạy sau
func AuditJob(auditor LedgerAuditor, log logger.Logger, timeout time.Duration) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		mismatches, err := auditor.Audit(ctx)
		if err != nil {
			log.Error("Ledger audit failed: %v", err)
			return
		}
		for _, m := range mismatches {
			log.Warn("Ledger mismatch: %s", m)
		}
		log.Info("Ledger audit finished in %v, %d mismatch(es)", time.Since(start), len(mismatches))
	}
}

// InitCronJobs khởi tạo các cron jobs, schedule rỗng thì không đăng ký gì
func InitCronJobs(c *cron.Cron, auditor LedgerAuditor, schedule string, log logger.Logger) error {
	if schedule == "" {
		log.Info("Ledger audit disabled")
		return nil
	}
	if _, err := c.AddFunc(schedule, AuditJob(auditor, log, time.Minute)); err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully (audit %s)", schedule)
	return nil
}
