package service

import (
	"context"
	"log"
	"time"

	"github.com/fitforge/gym_go_server/internal/pkg/queue"
	"github.com/fitforge/gym_go_server/internal/repository"
)

// ReminderService 定时提醒的排队端。这里只负责圈人和入队，
// 真正发信在 worker 进程里，单个会员排队失败不影响其他人。
type ReminderService struct {
	memberRepo *repository.MemberRepository
	mailQueue  *queue.Queue
}

func NewReminderService(memberRepo *repository.MemberRepository, mailQueue *queue.Queue) *ReminderService {
	return &ReminderService{
		memberRepo: memberRepo,
		mailQueue:  mailQueue,
	}
}

// SendWeeklyPaymentReminders 欠费提醒：启用、有欠费且留了邮箱的会员
func (s *ReminderService) SendWeeklyPaymentReminders(ctx context.Context) (int, error) {
	members, err := s.memberRepo.ListPendingReminderTargets()
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, member := range members {
		job := &queue.MailJob{MemberID: member.ID, Kind: queue.KindPaymentReminder}
		if err := s.mailQueue.Push(ctx, job); err != nil {
			log.Printf("Failed to enqueue payment reminder for member %d: %v", member.ID, err)
			continue
		}
		queued++
	}

	log.Printf("Payment reminder sweep: %d/%d queued", queued, len(members))
	return queued, nil
}

// SendDailyExpiryReminders 到期提醒：7 天内到期、启用且留了邮箱的会员
func (s *ReminderService) SendDailyExpiryReminders(ctx context.Context, asOf time.Time) (int, error) {
	members, err := s.memberRepo.ListExpiryReminderTargets(asOf)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, member := range members {
		job := &queue.MailJob{MemberID: member.ID, Kind: queue.KindExpiryReminder}
		if err := s.mailQueue.Push(ctx, job); err != nil {
			log.Printf("Failed to enqueue expiry reminder for member %d: %v", member.ID, err)
			continue
		}
		queued++
	}

	log.Printf("Expiry reminder sweep: %d/%d queued", queued, len(members))
	return queued, nil
}
