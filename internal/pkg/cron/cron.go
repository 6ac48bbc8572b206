package cron

import (
	"context"
	"log"
	"time"

	"github.com/fitforge/gym_go_server/internal/service"
)

// Service 定时任务调度。两条线：
//   - 每周一 09:00 UTC 扫欠费会员，排队发缴费提醒
//   - 每天 09:00 UTC 扫 7 天内到期的会籍，排队发到期提醒
type Service struct {
	reminderSvc *service.ReminderService
	stopChan    chan struct{}
}

func NewService(reminderSvc *service.ReminderService) *Service {
	return &Service{
		reminderSvc: reminderSvc,
		stopChan:    make(chan struct{}),
	}
}

func (s *Service) Start() {
	go s.runWeeklyPaymentSweep()
	go s.runDailyExpirySweep()
	log.Println("Cron service started")
}

func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runWeeklyPaymentSweep 每周一 09:00 UTC 执行
func (s *Service) runWeeklyPaymentSweep() {
	timer := time.NewTimer(untilNextWeekday(time.Now().UTC(), time.Monday, 9))
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			if _, err := s.reminderSvc.SendWeeklyPaymentReminders(ctx); err != nil {
				log.Printf("Weekly payment sweep failed: %v", err)
			}
			cancel()
			timer.Reset(untilNextWeekday(time.Now().UTC(), time.Monday, 9))
		case <-s.stopChan:
			return
		}
	}
}

// runDailyExpirySweep 每天 09:00 UTC 执行
func (s *Service) runDailyExpirySweep() {
	timer := time.NewTimer(untilNextHour(time.Now().UTC(), 9))
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			if _, err := s.reminderSvc.SendDailyExpiryReminders(ctx, time.Now()); err != nil {
				log.Printf("Daily expiry sweep failed: %v", err)
			}
			cancel()
			timer.Reset(untilNextHour(time.Now().UTC(), 9))
		case <-s.stopChan:
			return
		}
	}
}

// untilNextWeekday 距下一个 weekday 的 hour 点整还有多久。
// 当天该时刻已过则排到下一周。
func untilNextWeekday(now time.Time, weekday time.Weekday, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	daysAhead := (int(weekday) - int(now.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, daysAhead)
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next.Sub(now)
}

// untilNextHour 距下一个 hour 点整还有多久
func untilNextHour(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
