package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitforge/gym_go_server/config"
	"github.com/fitforge/gym_go_server/internal/api"
	"github.com/fitforge/gym_go_server/internal/api/handler"
	"github.com/fitforge/gym_go_server/internal/database"
	"github.com/fitforge/gym_go_server/internal/model"
	"github.com/fitforge/gym_go_server/internal/pkg/cron"
	"github.com/fitforge/gym_go_server/internal/pkg/oss"
	"github.com/fitforge/gym_go_server/internal/pkg/pubsub"
	"github.com/fitforge/gym_go_server/internal/pkg/queue"
	"github.com/fitforge/gym_go_server/internal/pkg/ws"
	"github.com/fitforge/gym_go_server/internal/repository"
	"github.com/fitforge/gym_go_server/internal/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Staff{},
		&model.Member{},
		&model.PaymentRecord{},
		&model.Lead{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient := database.NewRedis(&cfg.Redis)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}

	mailQueue := queue.NewQueue(redisClient, cfg.Queue.MailQueue)
	hub := ws.NewHub()

	// OSS 未配置时照片上传返回明确错误，其余功能不受影响
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Fatalf("Failed to init OSS client: %v", err)
		}
	}

	memberRepo := repository.NewMemberRepository(db)
	paymentRepo := repository.NewPaymentRecordRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	memberSvc := service.NewMemberService(db, memberRepo, paymentRepo, mailQueue, hub, ossClient)
	paymentSvc := service.NewPaymentService(db, memberRepo, paymentRepo, hub)
	leadSvc := service.NewLeadService(db, leadRepo, memberSvc, hub)
	dashboardSvc := service.NewDashboardService(memberRepo, paymentRepo, leadRepo)
	reminderSvc := service.NewReminderService(memberRepo, mailQueue)
	authSvc := service.NewAuthService(staffRepo, cfg)

	// worker 发完邮件后把结果发布到 Redis，这里转发给在线的后台
	subCtx, subCancel := context.WithCancel(context.Background())
	defer subCancel()
	subscriber := pubsub.NewSubscriber(redisClient)
	go func() {
		err := subscriber.Subscribe(subCtx, func(msg *pubsub.NotificationMessage) {
			if err := hub.Broadcast(&ws.Message{Type: msg.Type, Data: msg}); err != nil {
				log.Printf("Failed to forward notification: %v", err)
			}
		})
		if err != nil && subCtx.Err() == nil {
			log.Printf("Notification subscriber stopped: %v", err)
		}
	}()

	cronSvc := cron.NewService(reminderSvc)
	cronSvc.Start()
	defer cronSvc.Stop()

	router := api.NewRouter(cfg, &api.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Member:    handler.NewMemberHandler(memberSvc, paymentSvc),
		Lead:      handler.NewLeadHandler(leadSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		WS:        handler.NewWSHandler(hub, cfg.JWT.Secret),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server exited")
}
