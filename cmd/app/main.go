package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/kimanithuo1/backendCapstoneProject/configs"
	"github.com/kimanithuo1/backendCapstoneProject/internal/category"
	"github.com/kimanithuo1/backendCapstoneProject/internal/comment"
	"github.com/kimanithuo1/backendCapstoneProject/internal/events"
	"github.com/kimanithuo1/backendCapstoneProject/internal/media"
	"github.com/kimanithuo1/backendCapstoneProject/internal/migrate"
	"github.com/kimanithuo1/backendCapstoneProject/internal/notification"
	"github.com/kimanithuo1/backendCapstoneProject/internal/post"
	"github.com/kimanithuo1/backendCapstoneProject/internal/rating"
	"github.com/kimanithuo1/backendCapstoneProject/internal/search"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/db"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/httpx"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/logx"
	"github.com/kimanithuo1/backendCapstoneProject/internal/shared/redisx"
	"github.com/kimanithuo1/backendCapstoneProject/internal/subscription"
	"github.com/kimanithuo1/backendCapstoneProject/internal/tag"
	"github.com/kimanithuo1/backendCapstoneProject/internal/user"
	"github.com/kimanithuo1/backendCapstoneProject/internal/web"
)

func initOTEL(ctx context.Context, log zerolog.Logger) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatal().Err(err).Msg("otel exporter")
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("blog-api"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return tp.Shutdown
}

func main() {
	_ = godotenv.Load()
	log := logx.New("blog-api")
	cfg := configs.LoadConfig()

	ctx := context.Background()
	shutdown := initOTEL(ctx, log)
	defer func() {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	store := db.Open(cfg)
	_ = store.Base.Use(tracing.NewPlugin())

	if os.Getenv("AUTO_MIGRATE") != "false" {
		if err := migrate.AutoMigrateAll(store); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
	}

	rdb := redisx.Open(cfg)

	var producer events.Producer = events.Nop{}
	if os.Getenv("KAFKA_DISABLED") != "true" {
		p, err := events.NewProducer(cfg.KafkaURL)
		if err != nil {
			log.Fatal().Err(err).Msg("kafka producer")
		}
		producer = p
	}
	defer producer.Close()

	idx, err := search.Open(cfg.SearchPath)
	if err != nil {
		log.Fatal().Err(err).Msg("search index")
	}
	defer idx.Close()

	userRepo := user.NewRepository(store)
	catRepo := category.NewRepository(store)
	tagRepo := tag.NewRepository(store)
	postRepo := post.NewRepository(store)
	commentRepo := comment.NewRepository(store)
	ratingRepo := rating.NewRepository(store)
	subRepo := subscription.NewRepository(store)

	tagSvc := tag.NewService(tagRepo)
	postSvc := post.NewService(
		postRepo, tagSvc, userRepo, catRepo,
		commentRepo, rating.NewReader(ratingRepo), producer, idx,
	)
	userSvc := user.NewService(userRepo, postSvc)
	catSvc := category.NewService(catRepo, postSvc)
	commentSvc := comment.NewService(commentRepo, postSvc, userRepo, producer)
	ratingSvc := rating.NewService(ratingRepo, postSvc, userRepo, producer)
	subSvc := subscription.NewService(subRepo, userRepo, catRepo)
	notifSvc := notification.NewService(notification.NewRepository(rdb), subSvc)

	storage, err := media.NewStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("object storage")
	}
	if err := storage.EnsureBucket(ctx); err != nil {
		log.Warn().Err(err).Msg("ensure bucket")
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	protect := func(pattern string, h httpx.HandlerFunc) {
		mux.Handle(pattern, httpx.AuthMiddleware(httpx.Wrap(h)))
	}
	open := func(pattern string, h httpx.HandlerFunc) {
		mux.Handle(pattern, httpx.OptionalAuth(httpx.Wrap(h)))
	}

	uh := user.NewHandler(userSvc)
	mux.Handle("POST /api/users/register", httpx.RateLimit(5, 10, httpx.Wrap(uh.Register)))
	mux.Handle("POST /api/users/login", httpx.RateLimit(5, 10, httpx.Wrap(uh.Login)))
	mux.Handle("GET /api/users/{user_id}", httpx.Wrap(uh.GetByID))
	mux.Handle("GET /api/users/{$}", httpx.Wrap(uh.List))
	protect("GET /api/users/validate", uh.Validate)
	protect("GET /api/me", uh.Me)
	protect("GET /api/me/profile", uh.MyProfile)
	protect("PUT /api/me/profile", uh.UpdateMyProfile)

	ch := category.NewHandler(catSvc, cfg.PublicURL)
	mux.Handle("GET /api/categories/{$}", httpx.Wrap(ch.List))
	mux.Handle("GET /api/categories/{category_id}", httpx.Wrap(ch.GetByID))
	protect("POST /api/categories/{$}", ch.Create)
	protect("PUT /api/categories/{category_id}", ch.Update)
	protect("DELETE /api/categories/{category_id}", ch.Delete)

	th := tag.NewHandler(tagSvc, cfg.PublicURL)
	mux.Handle("GET /api/tags/{$}", httpx.Wrap(th.List))
	mux.Handle("GET /api/tags/{tag_id}", httpx.Wrap(th.GetByID))
	protect("POST /api/tags/{$}", th.Create)
	protect("DELETE /api/tags/{tag_id}", th.Delete)

	ph := post.NewHandler(postSvc, cfg.PublicURL)
	open("GET /api/posts/{$}", ph.List)
	open("GET /api/posts/{post_id}", ph.GetByID)
	open("GET /api/posts/slug/{slug}", ph.GetBySlug)
	mux.Handle("GET /api/posts/published", httpx.Wrap(ph.Published))
	mux.Handle("GET /api/posts/most-liked", httpx.Wrap(ph.MostLiked))
	mux.Handle("GET /api/posts/top-rated", httpx.Wrap(ph.TopRated))
	mux.Handle("GET /api/posts/trending", httpx.Wrap(ph.Trending))
	mux.Handle("GET /api/posts/by-category/{category_id}", httpx.Wrap(ph.ByCategory))
	mux.Handle("GET /api/posts/by-tag/{tag_id}", httpx.Wrap(ph.ByTag))
	mux.Handle("GET /api/posts/by-author/{user_id}", httpx.Wrap(ph.ByAuthor))
	mux.Handle("GET /api/categories/{category_id}/posts", httpx.Wrap(ph.ByCategory))
	mux.Handle("GET /api/tags/{tag_id}/posts", httpx.Wrap(ph.ByTag))
	mux.Handle("GET /api/users/{user_id}/posts", httpx.Wrap(ph.ByAuthor))
	protect("POST /api/posts/{$}", ph.Create)
	protect("PUT /api/posts/{post_id}", ph.Update)
	protect("DELETE /api/posts/{post_id}", ph.Delete)
	protect("POST /api/posts/{post_id}/publish", ph.Publish)
	protect("POST /api/posts/{post_id}/unpublish", ph.Unpublish)
	protect("POST /api/posts/{post_id}/archive", ph.Archive)
	protect("POST /api/posts/{post_id}/like", ph.Like)
	protect("DELETE /api/posts/{post_id}/like", ph.Unlike)
	protect("GET /api/me/posts", ph.MyPosts)
	protect("GET /api/me/drafts", ph.Drafts)
	protect("GET /api/me/scheduled", ph.Scheduled)
	protect("GET /api/me/likes", ph.MyLikes)

	cmh := comment.NewHandler(commentSvc, cfg.PublicURL)
	mux.Handle("GET /api/posts/{post_id}/comments", httpx.Wrap(cmh.ListByPost))
	protect("POST /api/posts/{post_id}/comments", cmh.Create)
	protect("PUT /api/comments/{comment_id}", cmh.Update)
	protect("DELETE /api/comments/{comment_id}", cmh.Delete)
	protect("GET /api/me/comments", cmh.Mine)

	rh := rating.NewHandler(ratingSvc, cfg.PublicURL)
	mux.Handle("GET /api/posts/{post_id}/ratings", httpx.Wrap(rh.ListByPost))
	mux.Handle("GET /api/posts/{post_id}/ratings/stats", httpx.Wrap(rh.Stats))
	protect("POST /api/posts/{post_id}/ratings", rh.Create)
	protect("PUT /api/posts/{post_id}/ratings", rh.Update)
	protect("DELETE /api/posts/{post_id}/ratings", rh.Delete)

	sh := subscription.NewHandler(subSvc, cfg.PublicURL)
	protect("POST /api/subscriptions/{$}", sh.Subscribe)
	protect("DELETE /api/subscriptions/{type}/{target_id}", sh.Unsubscribe)
	protect("GET /api/subscriptions/{$}", sh.Mine)

	nh := notification.NewHandler(notifSvc, cfg.PublicURL)
	protect("GET /api/notifications/{$}", nh.List)
	protect("POST /api/notifications/{notification_id}/read", nh.MarkRead)
	protect("POST /api/notifications/read-all", nh.MarkAllRead)
	protect("GET /api/notifications/unread-count", nh.UnreadCount)

	srh := search.NewHandler(idx)
	mux.Handle("GET /api/posts/search", httpx.Wrap(srh.Search))

	mh := media.NewHandler(storage)
	protect("POST /api/media/upload", mh.Upload)
	mux.Handle("GET /api/media/link", httpx.Wrap(mh.Link))

	wh := web.NewHandler(postSvc)
	mux.Handle("GET /{$}", httpx.Wrap(wh.Index))
	mux.Handle("GET /posts/{slug}/{$}", httpx.Wrap(wh.PostPage))

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Info().Str("addr", cfg.AppPort).Msg("blog-api listening")
	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}
