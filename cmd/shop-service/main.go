package main

import (
	"flag"
	"time"

	"github.com/GarageLink/GarageLink/internal/common/config"
	"github.com/GarageLink/GarageLink/internal/common/db"
	"github.com/GarageLink/GarageLink/internal/common/logger"
	"github.com/GarageLink/GarageLink/internal/common/middleware"
	"github.com/GarageLink/GarageLink/internal/common/server"
	"github.com/GarageLink/GarageLink/internal/common/tracing"
	"github.com/GarageLink/GarageLink/internal/customer"
	"github.com/GarageLink/GarageLink/internal/media"
	"github.com/GarageLink/GarageLink/internal/repair"
	"github.com/GarageLink/GarageLink/internal/search"
	api "github.com/GarageLink/GarageLink/internal/server"
	"github.com/GarageLink/GarageLink/internal/user"
	"github.com/GarageLink/GarageLink/internal/vehicle"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "configs/shop-service.json", "path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		logrus.Fatalf("failed to init logger: %v", err)
	}

	// 链路追踪（失败只降级，不阻塞启动）
	if _, closer, err := tracing.InitTracer(cfg.Server.Name, cfg.Jaeger.Endpoint, cfg.Jaeger.Sampler); err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}

	gormDB, err := db.NewMySQL(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.MaxIdle,
		cfg.Database.MaxOpen,
	)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&customer.Customer{},
		&vehicle.Vehicle{},
		&repair.Order{},
		&media.Attachment{},
		&user.User{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	customerSvc := customer.NewService(customer.NewRepo(gormDB))
	vehicleSvc := vehicle.NewService(vehicle.NewRepo(gormDB))
	repairSvc := repair.NewService(repair.NewRepo(gormDB))
	mediaSvc := media.NewService(media.NewRepo(gormDB), cfg.Media)
	userSvc := user.NewService(user.NewRepo(gormDB), cfg.Auth)

	// 模糊抓取是最重的扫描，单独包一层熔断
	breaker := middleware.NewCircuitBreaker("search-fuzzy", 5, 30*time.Second)
	searchSvc := search.NewService(search.NewGormStore(gormDB, breaker), cfg.Search.DefaultLimit)

	handlers := api.NewHandlers(log, customerSvc, vehicleSvc, repairSvc, mediaSvc, userSvc, searchSvc)

	err = server.RunHTTPServer(cfg, log,
		func(e *gin.Engine) error { return handlers.Register(e) },
		server.WithRateLimit(middleware.NewTokenBucket(200, 100)),
		server.WithShutdownTimeout(10*time.Second),
	)
	if err != nil {
		log.Fatalf("http server exited with error: %v", err)
	}
}
