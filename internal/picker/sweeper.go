package picker

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// Sweeper định kỳ đóng các popup chọn cửa hàng bị treo quá lâu.
type Sweeper struct {
	controller *Controller
	maxAge     time.Duration
	interval   time.Duration
	scheduler  gocron.Scheduler
}

func NewSweeper(controller *Controller, maxAge time.Duration, interval time.Duration) (*Sweeper, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Sweeper{
		controller: controller,
		maxAge:     maxAge,
		interval:   interval,
		scheduler:  scheduler,
	}, nil
}

// Start bắt đầu chạy cronjob dọn dẹp phiên chọn cửa hàng.
func (s *Sweeper) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(
			func() {
				s.sweep()
			},
		),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	return nil
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	if closed := s.controller.Expire(ctx, s.maxAge); closed > 0 {
		log.Info().Str("job", "sweep_picker_sessions").Int("closed", closed).Msg("expired picker sessions closed")
	}
}

// Stop dừng cronjob
func (s *Sweeper) Stop() error {
	return s.scheduler.Shutdown()
}
