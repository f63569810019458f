package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/kimanithuo1/backendCapstoneProject/configs"
	"github.com/kimanithuo1/backendCapstoneProject/internal/category"
	"github.com/kimanithuo1/backendCapstoneProject/internal/comment"
	"github.com/kimanithuo1/backendCapstoneProject/internal/events"
	"github.com/kimanithuo1/backendCapstoneProject/internal/notification"
	"github.com/kimanithuo1/backendCapstoneProject/internal/post"
	"github.com/kimanithuo1/backendCapstoneProject/internal/rating"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/db"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/logx"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/redisx"
	"github.com/kimanithuo1/backendCapstoneProject/internal/subscription"
	"github.com/kimanithuo1/backendCapstoneProject/internal/tag"
	"github.com/kimanithuo1/backendCapstoneProject/internal/user"
)

const consumerGroup = "blog-worker"

func main() {
	_ = godotenv.Load()
	log := logx.New("blog-worker")
	cfg := configs.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := db.Open(cfg)
	rdb := redisx.Open(cfg)

	producer, err := events.NewProducer(cfg.KafkaURL)
	if err != nil {
		log.Fatal().Err(err).Msg("kafka producer")
	}
	defer producer.Close()

	userRepo := user.NewRepository(store)
	catRepo := category.NewRepository(store)
	tagRepo := tag.NewRepository(store)
	postRepo := post.NewRepository(store)
	commentRepo := comment.NewRepository(store)
	ratingRepo := rating.NewRepository(store)
	subRepo := subscription.NewRepository(store)

	// The API process owns the search index; scheduled publishes get picked
	// up there on the next write.
	postSvc := post.NewService(
		postRepo, tag.NewService(tagRepo), userRepo, catRepo,
		commentRepo, rating.NewReader(ratingRepo), producer, post.NopIndexer{},
	)
	subSvc := subscription.NewService(subRepo, userRepo, catRepo)
	notifSvc := notification.NewService(notification.NewRepository(rdb), subSvc)

	dispatch := func(ctx context.Context, topic string, _, value []byte) error {
		switch topic {
		case events.TopicPostPublished:
			var ev events.PostPublished
			if err := json.Unmarshal(value, &ev); err != nil {
				return fmt.Errorf("decode %s: %w", topic, err)
			}
			return notifSvc.NotifyPostPublished(ctx, ev)
		case events.TopicPostLiked:
			var ev events.PostLiked
			if err := json.Unmarshal(value, &ev); err != nil {
				return fmt.Errorf("decode %s: %w", topic, err)
			}
			return notifSvc.NotifyPostLiked(ctx, ev)
		case events.TopicPostRated:
			var ev events.PostRated
			if err := json.Unmarshal(value, &ev); err != nil {
				return fmt.Errorf("decode %s: %w", topic, err)
			}
			return notifSvc.NotifyPostRated(ctx, ev)
		case events.TopicCommentCreated:
			var ev events.CommentCreated
			if err := json.Unmarshal(value, &ev); err != nil {
				return fmt.Errorf("decode %s: %w", topic, err)
			}
			return notifSvc.NotifyCommentCreated(ctx, ev)
		}
		return nil
	}

	topics := []string{
		events.TopicPostPublished,
		events.TopicPostLiked,
		events.TopicPostRated,
		events.TopicCommentCreated,
	}
	var wg sync.WaitGroup
	for _, topic := range topics {
		c := events.NewConsumer(cfg.KafkaURL, consumerGroup, topic, dispatch, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Run(ctx); err != nil {
				log.Error().Err(err).Msg("consumer exited")
			}
		}()
	}

	sched := cron.New()
	_, err = sched.AddFunc(schedule(), func() {
		n, err := postSvc.PublishDue(ctx, time.Now())
		if err != nil {
			log.Error().Err(err).Msg("publish due posts")
			return
		}
		if n > 0 {
			log.Info().Int("published", n).Msg("scheduled posts published")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cron")
	}
	sched.Start()

	log.Info().Str("group", consumerGroup).Msg("worker running")
	<-ctx.Done()
	cronCtx := sched.Stop()
	<-cronCtx.Done()
	wg.Wait()
	log.Info().Msg("worker stopped")
}

func schedule() string {
	if s := os.Getenv("PUBLISH_CRON"); s != "" {
		return s
	}
	return "@every 1m"
}
