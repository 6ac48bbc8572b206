package worker

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/fitforge/gym_go_server/internal/model"
	"github.com/fitforge/gym_go_server/internal/pkg/email"
	"github.com/fitforge/gym_go_server/internal/pkg/pubsub"
	"github.com/fitforge/gym_go_server/internal/pkg/queue"
	"github.com/fitforge/gym_go_server/internal/repository"
)

const dateLayout = "2006-01-02"

// Processor 邮件任务处理器。任务只带 member_id，
// 处理时重新加载会员，前提条件已不成立的任务直接跳过。
// 发送失败只记日志并上报结果，不会让任务或队列失败。
type Processor struct {
	memberRepo *repository.MemberRepository
	emailSvc   *email.Service
	publisher  *pubsub.Publisher
}

func NewProcessor(
	memberRepo *repository.MemberRepository,
	emailSvc *email.Service,
	publisher *pubsub.Publisher,
) *Processor {
	return &Processor{
		memberRepo: memberRepo,
		emailSvc:   emailSvc,
		publisher:  publisher,
	}
}

// Process 处理一个邮件任务
func (p *Processor) Process(ctx context.Context, job *queue.MailJob) {
	member, err := p.memberRepo.GetByID(job.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Skip %s job: member %d no longer exists", job.Kind, job.MemberID)
			return
		}
		log.Printf("Failed to load member %d for %s job: %v", job.MemberID, job.Kind, err)
		return
	}

	if member.Email == nil {
		log.Printf("Skip %s job: member %d has no email", job.Kind, member.ID)
		return
	}
	to := *member.Email

	var sendErr error
	switch job.Kind {
	case queue.KindWelcome:
		sendErr = p.emailSvc.SendWelcome(to, member.Name)

	case queue.KindPaymentReminder:
		// 入队后已结清的不再提醒
		if !member.HasPendingPayment() || !member.IsActive {
			log.Printf("Skip payment reminder: member %d has no pending amount", member.ID)
			return
		}
		sendErr = p.emailSvc.SendPaymentReminder(to, member.Name, member.PendingAmount)

	case queue.KindExpiryReminder:
		// 入队后已续费或已过期的不再提醒
		now := time.Now()
		daysLeft := member.DaysUntilExpiry(now)
		if member.ExpiryDate == nil || !member.IsActive || daysLeft < 0 || daysLeft > 7 {
			log.Printf("Skip expiry reminder: member %d is out of the 7-day window", member.ID)
			return
		}
		sendErr = p.emailSvc.SendExpiryReminder(to, member.Name, member.ExpiryDate.Format(dateLayout), daysLeft)

	default:
		log.Printf("Unknown mail job kind: %s", job.Kind)
		return
	}

	if sendErr != nil {
		log.Printf("Failed to send %s mail to member %d: %v", job.Kind, member.ID, sendErr)
	}
	p.report(ctx, member, job.Kind, to, sendErr)
}

// report 把发送结果发布到 Redis，API 进程转发给后台仪表盘
func (p *Processor) report(ctx context.Context, member *model.Member, kind, to string, sendErr error) {
	if p.publisher == nil {
		return
	}

	msg := &pubsub.NotificationMessage{
		MemberID:   member.ID,
		MemberName: member.Name,
		Kind:       kind,
		Recipient:  to,
		Delivered:  sendErr == nil,
	}
	if sendErr != nil {
		msg.Error = sendErr.Error()
	}

	if err := p.publisher.PublishNotification(ctx, msg); err != nil {
		log.Printf("Failed to publish notification for member %d: %v", member.ID, err)
	}
}
