package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/composersite/catalog/internal/repair"
)

const repairTimeout = 10 * time.Minute

// RepairJob runs the review reference repair on a schedule.
type RepairJob struct {
	repairer *repair.Repairer
	schedule string
}

func NewRepairJob(schedule string, repairer *repair.Repairer) *RepairJob {
	return &RepairJob{
		repairer: repairer,
		schedule: schedule,
	}
}

func (r *RepairJob) Name() string {
	return "repair"
}

func (r *RepairJob) Schedule() string {
	return r.schedule
}

func (r *RepairJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), repairTimeout)
	defer cancel()

	report, err := r.repairer.Run(ctx)
	if err != nil {
		logrus.Errorf("repair failed: %v", err)
		return
	}
	logrus.Infof("repair updated %d of %d reviews", report.Updated(), report.Reviews)
}
