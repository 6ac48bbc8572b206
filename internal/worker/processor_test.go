package worker

import (
	"context"
	"testing"
	"time"

	"github.com/fitforge/gym_go_server/config"
	"github.com/fitforge/gym_go_server/internal/pkg/email"
	"github.com/fitforge/gym_go_server/internal/pkg/queue"
	"github.com/fitforge/gym_go_server/internal/repository"
	"github.com/fitforge/gym_go_server/internal/testutil"
)

// 这些用例只覆盖跳过逻辑：排队之后前提条件变了的任务直接丢弃，
// 不会走到 SMTP 发送。

func TestProcessSkipsMissingMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	processor := NewProcessor(
		repository.NewMemberRepository(db),
		email.NewService(&config.EmailConfig{}, &config.GymConfig{}),
		nil,
	)

	// 会员已删除，任务静默丢弃
	processor.Process(context.Background(), &queue.MailJob{MemberID: 9999, Kind: queue.KindWelcome})
}

func TestProcessSkipsMemberWithoutEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	processor := NewProcessor(
		repository.NewMemberRepository(db),
		email.NewService(&config.EmailConfig{}, &config.GymConfig{}),
		nil,
	)

	member := testutil.TestMember(t, db)
	processor.Process(context.Background(), &queue.MailJob{MemberID: member.ID, Kind: queue.KindWelcome})
}

func TestProcessSkipsSettledPaymentReminder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	processor := NewProcessor(
		repository.NewMemberRepository(db),
		email.NewService(&config.EmailConfig{}, &config.GymConfig{}),
		nil,
	)

	// 排队后已结清，不再提醒
	member := testutil.TestMember(t, db, testutil.WithMemberEmail("paid@example.com"))
	processor.Process(context.Background(), &queue.MailJob{MemberID: member.ID, Kind: queue.KindPaymentReminder})
}

func TestProcessSkipsExpiryReminderOutOfWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	processor := NewProcessor(
		repository.NewMemberRepository(db),
		email.NewService(&config.EmailConfig{}, &config.GymConfig{}),
		nil,
	)

	// 排队后已续费，到期日在窗口外
	member := testutil.TestMember(t, db,
		testutil.WithMemberEmail("renewed@example.com"),
		testutil.WithExpiryDate(time.Now().AddDate(0, 0, 60)))
	processor.Process(context.Background(), &queue.MailJob{MemberID: member.ID, Kind: queue.KindExpiryReminder})
}

func TestProcessIgnoresUnknownKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	processor := NewProcessor(
		repository.NewMemberRepository(db),
		email.NewService(&config.EmailConfig{}, &config.GymConfig{}),
		nil,
	)

	member := testutil.TestMember(t, db, testutil.WithMemberEmail("a@example.com"))
	processor.Process(context.Background(), &queue.MailJob{MemberID: member.ID, Kind: "newsletter"})
}
