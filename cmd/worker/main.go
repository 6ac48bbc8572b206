package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fitforge/gym_go_server/config"
	"github.com/fitforge/gym_go_server/internal/database"
	"github.com/fitforge/gym_go_server/internal/pkg/email"
	"github.com/fitforge/gym_go_server/internal/pkg/pubsub"
	"github.com/fitforge/gym_go_server/internal/pkg/queue"
	"github.com/fitforge/gym_go_server/internal/repository"
	"github.com/fitforge/gym_go_server/internal/worker"
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

	redisClient := database.NewRedis(&cfg.Redis)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}

	mailQueue := queue.NewQueue(redisClient, cfg.Queue.MailQueue)
	processor := worker.NewProcessor(
		repository.NewMemberRepository(db),
		email.NewService(&cfg.Email, &cfg.Gym),
		pubsub.NewPublisher(redisClient),
	)

	workers := cfg.Queue.MaxWorkers
	if workers < 1 {
		workers = 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, id, mailQueue, processor)
		}(i)
	}
	log.Printf("Mail worker started, workers: %d, queue: %s", workers, cfg.Queue.MailQueue)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down worker...")
	cancel()
	wg.Wait()
	log.Println("Worker exited")
}

func runWorker(ctx context.Context, id int, mailQueue *queue.Queue, processor *worker.Processor) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := mailQueue.Pop(ctx, 5*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Worker %d pop error: %v", id, err)
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue // 超时，无任务
		}

		processor.Process(ctx, job)
	}
}
