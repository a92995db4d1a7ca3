package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"SmartMoneyIndex/internal/advisor"
	"SmartMoneyIndex/internal/loader"
	"SmartMoneyIndex/internal/metrics"
	"SmartMoneyIndex/internal/model"
	"SmartMoneyIndex/internal/notifier"
	"SmartMoneyIndex/internal/recorder"
	"SmartMoneyIndex/internal/scoring"
)

// Scheduler manages the cron tasks: cache prewarm plus score recording,
// and the daily pushed report.
type Scheduler struct {
	Cron     *cron.Cron
	Loader   *loader.Loader
	Recorder recorder.Recorder
	Notifier *notifier.TelegramNotifier
	Metrics  *metrics.Recorder
	Ctx      context.Context

	// DefaultCash parameterizes unattended scoring runs; interactive
	// requests carry their own survey input.
	DefaultCash float64
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, l *loader.Loader, rec recorder.Recorder, tn *notifier.TelegramNotifier, m *metrics.Recorder, defaultCash float64) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Loader:      l,
		Recorder:    rec,
		Notifier:    tn,
		Metrics:     m,
		Ctx:         ctx,
		DefaultCash: defaultCash,
	}
}

// RegisterAll registers the refresh and daily report tasks.
func (s *Scheduler) RegisterAll(refreshCron, reportCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

// refreshTask prewarms the snapshot cache, records empty-series
// incidents, and persists a score snapshot when scoring is possible.
func (s *Scheduler) refreshTask() {
	log.Info().Msg("running scheduled refresh")
	snap, err := s.Loader.Refresh(s.Ctx)
	if err != nil {
		log.Error().Err(err).Msg("scheduled refresh failed")
		return
	}

	if empty := emptySeries(snap); len(empty) > 0 {
		for _, name := range empty {
			if err := s.Recorder.RecordEmptySeries(&recorder.EmptySeriesEvent{
				Series: name,
				Note:   "scheduled refresh returned no observations",
			}); err != nil {
				log.Error().Err(err).Msg("record empty series")
			}
		}
		s.trySend(notifier.FormatFetchFailure(empty))
	}

	card, err := scoring.Evaluate(snap, s.DefaultCash)
	if err != nil {
		log.Warn().Err(err).Msg("scoring skipped this refresh")
		return
	}

	if s.Metrics != nil {
		points := make(map[string]int, len(card.Components))
		for _, c := range card.Components {
			points[c.Name] = c.Points
		}
		s.Metrics.RecordScore(card.Total, points)
	}

	if err := s.Recorder.RecordScore(buildScoreSnapshot(snap, card, s.DefaultCash)); err != nil {
		log.Error().Err(err).Msg("record score snapshot")
	}
}

// reportTask pushes the daily score report and default advisories.
func (s *Scheduler) reportTask() {
	log.Info().Msg("running daily report")
	snap, err := s.Loader.Load(s.Ctx)
	if err != nil {
		log.Error().Err(err).Msg("daily report load failed")
		return
	}
	card, err := scoring.Evaluate(snap, s.DefaultCash)
	if err != nil {
		s.trySend(notifier.FormatFetchFailure(emptySeries(snap)))
		return
	}
	report := notifier.FormatScoreReport(card, snap)
	adv := advisor.Advise(snap, card, model.SurveyInput{CashLevel: s.DefaultCash})
	s.trySend(report + "\n" + notifier.FormatAdvice(adv))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "查看总分", "/score":
		snap, err := s.Loader.Load(s.Ctx)
		if err != nil {
			return fmt.Sprintf("❌ 数据加载失败: %v", err)
		}
		card, err := scoring.Evaluate(snap, s.DefaultCash)
		if err != nil {
			return notifier.FormatFetchFailure(emptySeries(snap))
		}
		return notifier.FormatScoreReport(card, snap)
	case "查看预警", "/advice":
		snap, err := s.Loader.Load(s.Ctx)
		if err != nil {
			return fmt.Sprintf("❌ 数据加载失败: %v", err)
		}
		card, err := scoring.Evaluate(snap, s.DefaultCash)
		if err != nil {
			return notifier.FormatFetchFailure(emptySeries(snap))
		}
		return notifier.FormatAdvice(advisor.Advise(snap, card, model.SurveyInput{CashLevel: s.DefaultCash}))
	case "刷新数据", "/refresh":
		go s.refreshTask()
		return "已触发数据刷新"
	default:
		return "可用命令:\n• 查看总分 (/score)\n• 查看预警 (/advice)\n• 刷新数据 (/refresh)"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}

// emptySeries lists the required series that came back empty.
func emptySeries(snap *model.MarketSnapshot) []string {
	var out []string
	for _, s := range []model.Series{
		snap.RealYield, snap.CurrencyIndex, snap.CreditSpread,
		snap.Copper, snap.Gold, snap.HKD,
	} {
		if s.IsEmpty() {
			out = append(out, s.Name)
		}
	}
	return out
}

func buildScoreSnapshot(snap *model.MarketSnapshot, card *model.ScoreCard, cash float64) *recorder.ScoreSnapshot {
	last := func(s model.Series) float64 {
		v, _ := s.Last()
		return v
	}
	return &recorder.ScoreSnapshot{
		RealYield:     last(snap.RealYield),
		CurrencyIndex: last(snap.CurrencyIndex),
		CreditSpread:  last(snap.CreditSpread),
		MomentumRatio: last(snap.MomentumRatio),
		MomentumMA:    last(snap.MomentumMA),
		HKD:           last(snap.HKD),
		CashLevel:     cash,
		Card:          card,
	}
}
