package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tisbroker/insurance-api/auth"
	"github.com/tisbroker/insurance-api/config"
	"github.com/tisbroker/insurance-api/logger"
	"github.com/tisbroker/insurance-api/models"
	"github.com/tisbroker/insurance-api/permissions"
	"github.com/tisbroker/insurance-api/routes"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	models.OrgEmailDomain = cfg.OrgEmailDomain

	db := initDatabase(cfg, zlog)
	if err := db.AutoMigrate(
		&models.User{},
		&models.EnterpriseEmployee{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductPackage{},
		&models.News{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.ConsultationRequest{},
		&models.ChatMessage{},
	); err != nil {
		zlog.Fatal("auto-migrate failed", zap.Error(err))
	}

	enforcer, err := permissions.NewEnforcer()
	if err != nil {
		zlog.Fatal("failed to build permission enforcer", zap.Error(err))
	}

	authSvc := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	// Uploaded product/news images and avatars are served straight from
	// the upload store.
	r.Static("/uploads", cfg.UploadDir)

	routes.SetupRoutes(r, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Log:      zlog,
		AuthSvc:  authSvc,
		Enforcer: enforcer,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func initDatabase(cfg *config.Config, zlog *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		zlog.Fatal("failed to connect database", zap.Error(err))
	}
	return db
}
