package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/fitforge/gym_go_server/config"
	"github.com/fitforge/gym_go_server/internal/database"
	"github.com/fitforge/gym_go_server/internal/pkg/queue"
	"github.com/fitforge/gym_go_server/internal/repository"
	"github.com/fitforge/gym_go_server/internal/service"
)

// 手动触发提醒扫描，定时任务出问题时补发用：
//
//	remind -config config.yaml -kind payment
//	remind -config config.yaml -kind expiry
func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	kind := flag.String("kind", "", "payment or expiry")
	flag.Parse()

	if *kind != "payment" && *kind != "expiry" {
		log.Fatal("Usage: remind -kind payment|expiry")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	redisClient := database.NewRedis(&cfg.Redis)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}

	reminderSvc := service.NewReminderService(
		repository.NewMemberRepository(db),
		queue.NewQueue(redisClient, cfg.Queue.MailQueue),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var queued int
	switch *kind {
	case "payment":
		queued, err = reminderSvc.SendWeeklyPaymentReminders(ctx)
	case "expiry":
		queued, err = reminderSvc.SendDailyExpiryReminders(ctx, time.Now())
	}
	if err != nil {
		log.Fatalf("Reminder sweep failed: %v", err)
	}

	log.Printf("Done, %d reminders queued", queued)
}
