package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/shoporbit/shop-api/configs"
	"github.com/shoporbit/shop-api/internal/adapter/cache"
	httpadapter "github.com/shoporbit/shop-api/internal/adapter/http"
	"github.com/shoporbit/shop-api/internal/adapter/http/middleware"
	"github.com/shoporbit/shop-api/internal/adapter/kafka"
	"github.com/shoporbit/shop-api/internal/adapter/mail"
	"github.com/shoporbit/shop-api/internal/adapter/queue"
	"github.com/shoporbit/shop-api/internal/adapter/repo"
	"github.com/shoporbit/shop-api/internal/adapter/ws"
	"github.com/shoporbit/shop-api/internal/logging"
	"github.com/shoporbit/shop-api/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.Init(cfg.App.Name, "./logs/app.log")

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.PingContext(ctx)
	cancel()
	if err != nil {
		return nil, nil, fmt.Errorf("mysql ping: %w", err)
	}

	log.Info("starting up", "env", cfg.App.Env)

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	// init rabbitmq
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	// repos + cache
	orderRepo := repo.NewMySQLOrderRepo(db)
	userRepo := repo.NewMySQLUserRepo(db)
	productRepo := repo.NewMySQLProductRepo(db)
	brandRepo := repo.NewMySQLBrandRepo(db)
	otpRepo := repo.NewMySQLOtpRepo(db)
	statusCache := cache.NewRedisStatusCache(rdb, cfg.Redis.CacheTTL)

	// outbound mail: producer enqueues, the queue worker delivers over SMTP
	mailProducer, err := queue.NewMailProducer(ch)
	if err != nil {
		return nil, nil, fmt.Errorf("mail producer: %w", err)
	}
	mailer, err := mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port,
		cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	if err != nil {
		return nil, nil, fmt.Errorf("smtp mailer: %w", err)
	}
	if err := setupMailWorker(ch, mailer); err != nil {
		return nil, nil, fmt.Errorf("mail worker: %w", err)
	}

	// realtime hub
	hub := ws.NewHub()

	// usecases
	otpService := usecase.NewOtpService(otpRepo, userRepo, mailProducer,
		cfg.OTP.Length, cfg.OTP.Expiry, cfg.OTP.ResendInterval)
	auth := usecase.NewAuth(userRepo, otpService, usecase.TokenConfig{
		Secret:   cfg.Security.JWTSecret,
		Issuer:   cfg.Security.Issuer,
		Audience: cfg.Security.Audience,
		TTL:      cfg.Security.TokenTTL,
	})
	createOrder := usecase.NewCreateOrder(orderRepo, productRepo, statusCache)
	updateStatus := usecase.NewUpdateShippingStatus(orderRepo, userRepo, statusCache, hub, mailProducer)
	orderQueries := usecase.NewOrderQueries(orderRepo, statusCache)
	catalog := usecase.NewCatalog(productRepo, brandRepo)

	// carrier shipping-status feed
	kafkaCancel, err := setupCarrierFeed(cfg, updateStatus)
	if err != nil {
		return nil, nil, fmt.Errorf("carrier feed: %w", err)
	}

	// http
	prod := cfg.Production()
	handlers := httpadapter.Handlers{
		Auth:     httpadapter.NewAuthHandler(auth, prod),
		Orders:   httpadapter.NewOrderHandler(createOrder, updateStatus, orderQueries, prod),
		Products: httpadapter.NewProductHandler(catalog, prod),
		Brands:   httpadapter.NewBrandHandler(catalog, prod),
		Users:    httpadapter.NewUserHandler(auth, userRepo, prod),
		Hub:      hub,
	}
	router := httpadapter.NewRouter(handlers, middleware.NewAuthz(cfg))

	cleanup := func() {
		kafkaCancel()
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func setupMailWorker(ch *amqp091.Channel, mailer *mail.SMTPMailer) error {
	h := queue.NewSendMailHandler(mailer)

	router := queue.NewRouter(ch, queue.WithPrefetch(20))
	router.Register(queue.MailQueueName,
		queue.JSONHandler[usecase.MailJob]{HandleFunc: h.HandleSend})
	return router.Start()
}

func setupCarrierFeed(cfg configs.Config, updater *usecase.UpdateShippingStatus) (func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		// disabled in local setups without a broker
		return func() {}, nil
	}

	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return nil, err
	}

	log := logging.New("carrier-feed")
	h := kafka.NewShippingStatusHandler(updater, log)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.ShippingTopic}, h.Handle, log)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error("consumer stopped", "err", err)
		}
	}()
	return func() {
		cancel()
		_ = grp.Close()
	}, nil
}
