// Package job runs the scheduled maintenance work: purging stale drafts and
// refreshing the renewal urgency gauges.
package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/Yeisssons/helios-contract-analysis-sub000/calendar"
	"github.com/Yeisssons/helios-contract-analysis-sub000/middleware"
	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
	"github.com/Yeisssons/helios-contract-analysis-sub000/storage"
)

var (
	urgentRenewals  prometheus.Gauge
	expiredRenewals prometheus.Gauge
)

func init() {
	urgentRenewals = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "renewals_urgent",
		Help: "Documents whose renewal is inside the urgent window.",
	})
	expiredRenewals = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "renewals_expired",
		Help: "Documents whose renewal date has passed.",
	})
	prometheus.MustRegister(urgentRenewals, expiredRenewals)
}

// Scheduler owns the cron instance and the repositories the jobs touch.
type Scheduler struct {
	cron  *cron.Cron
	store storage.Store
}

func NewScheduler(store storage.Store) *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		store: store,
	}
}

// Start registers the daily maintenance job and starts the scheduler.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.RunMaintenance(context.Background())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunMaintenance executes one maintenance pass. Exported so it can run on
// demand and from tests.
func (s *Scheduler) RunMaintenance(ctx context.Context) {
	now := time.Now()

	purged, err := s.store.Drafts().DeleteOlderThan(ctx, now.Add(-model.DraftTTL))
	if err != nil {
		slog.Error("draft purge failed", "error", err)
	} else if purged > 0 {
		slog.Info("purged stale drafts", "count", purged)
		middleware.ObserveDraftsPurged(purged)
	}

	docs, err := s.store.Documents().ListAll(ctx)
	if err != nil {
		slog.Error("renewal scan failed", "error", err)
		return
	}

	var urgent, expired int
	for _, doc := range docs {
		switch calendar.DocumentStatus(doc, now) {
		case calendar.StatusUrgent:
			urgent++
		case calendar.StatusExpired:
			expired++
		}
	}
	urgentRenewals.Set(float64(urgent))
	expiredRenewals.Set(float64(expired))

	slog.Info("renewal scan completed",
		"documents", len(docs),
		"urgent", urgent,
		"expired", expired,
	)
}
