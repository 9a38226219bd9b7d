package jobs

import (
	"fmt"

	"github.com/hassanmehmood/medicart/app/notifications"
	"github.com/hassanmehmood/medicart/app/repositories"
	"github.com/hassanmehmood/medicart/config"
	"github.com/hassanmehmood/medicart/pkg/database"
	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/notification"
)

// LowStockSweepJob scans the catalog for medicines at or below the
// configured threshold and alerts ops. Scheduled nightly; also dispatchable
// by hand.
type LowStockSweepJob struct{}

func (j *LowStockSweepJob) Handle() error {
	threshold := config.LowStockThreshold()

	medicines, err := repositories.NewMedicineRepository(database.DB).LowStock(threshold)
	if err != nil {
		return fmt.Errorf("low stock scan: %w", err)
	}
	if len(medicines) == 0 {
		logger.Info("low stock sweep: all medicines above threshold", "threshold", threshold)
		return nil
	}

	if errs := notification.Send("", 0, &notifications.LowStock{Medicines: medicines, Threshold: threshold}); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
