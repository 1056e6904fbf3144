package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"resume-assist-go/internal/agent"
	"resume-assist-go/internal/api/handler"
	"resume-assist-go/internal/api/router"
	"resume-assist-go/internal/auth"
	"resume-assist-go/internal/config"
	"resume-assist-go/internal/job"
	"resume-assist-go/internal/logger"
	"resume-assist-go/internal/payment"
	"resume-assist-go/internal/processor"
	"resume-assist-go/internal/render"
	"resume-assist-go/internal/storage"
	"resume-assist-go/internal/tracing"
)

func main() {
	// .env里通常放LLM_API_KEY、JWT_SECRET等敏感配置，不存在时忽略
	_ = godotenv.Load()

	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}

	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
		File:         cfg.Logger.File,
	})
	glog.SetLogger(hertzadapter.From(logger.Logger))
	logger.Info().Str("address", cfg.Server.Address).Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.InitProvider(ctx, &cfg.Tracing)
	if err != nil {
		// 追踪上报是旁路能力，初始化失败只降级不退出
		logger.Warn().Err(err).Msg("初始化链路追踪失败，继续以无追踪模式运行")
		shutdownTracing = func(context.Context) error { return nil }
	}

	store, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储失败")
	}
	defer store.Close()
	logger.Info().Bool("redis", store.HasRedis()).Bool("minio", store.HasMinIO()).Msg("存储服务初始化成功")

	llmSettings := config.NewLLMSettingsHolder(&cfg.LLM)
	usageStats := agent.NewUsageStats()
	chatModel := agent.NewOpenAIChatModel(llmSettings, usageStats)
	gateway := agent.NewGateway(chatModel)

	svc := processor.NewService(cfg, store, gateway)
	tokens := auth.NewTokenManager(&cfg.JWT)
	renderers := render.NewRegistry(&cfg.Render)

	handlers := &router.Handlers{
		Resume:   handler.NewResumeHandler(svc, renderers),
		Analysis: handler.NewAnalysisHandler(svc, store),
		User:     handler.NewUserHandler(store, tokens, &cfg.JWT),
		Payment:  handler.NewPaymentHandler(payment.NewService(store.SQLite)),
		Job:      handler.NewJobHandler(job.NewMockClient()),
		Config:   handler.NewConfigHandler(llmSettings, chatModel),
		Status:   handler.NewStatusHandler(usageStats),
	}

	hertzTracer, tracerCfg := hertztracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(32<<20),
		hertzTracer,
	)
	h.Use(hertztracing.ServerMiddleware(tracerCfg))

	router.RegisterRoutes(h, handlers, tokens, cfg.Admin.APIKey)
	logger.Info().Msg("HTTP路由注册成功")

	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器已启动")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("关闭链路追踪失败")
	}
	logger.Info().Msg("优雅退出完成")
}
