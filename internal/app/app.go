package app

import (
	"context"
	"fmt"
	"hrbot/internal/config"
	"hrbot/internal/db"
	"hrbot/internal/handlers"
	"hrbot/internal/logger"
	"hrbot/internal/models"
	"hrbot/internal/repository"
	"hrbot/internal/routes"
	"hrbot/internal/services"
	"hrbot/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Репозитории
	nodeRepo := repository.NewNodeRepository(conn)
	buttonRepo := repository.NewButtonRepository(conn)
	imageRepo := repository.NewImageRepository(conn)
	userRepo := repository.NewUserRepository(conn)
	hrRepo := repository.NewHRRequestRepository(conn)

	// Кэш представлений узлов (выключен при пустом REDIS_ADDR)
	cache, err := services.NewNodeViewCache(cfg.RedisAddr)
	if err != nil {
		return nil, err
	}

	// Сервисы
	notifier := services.NewTelegramNotifier(cfg.BotToken)
	nodeService := services.NewNodeService(nodeRepo, buttonRepo, imageRepo, cache, cfg.MediaBaseURL)
	hrService := services.NewHRService(hrRepo, userRepo, notifier)
	authService := services.NewAuthService(userRepo, cfg)
	importerService := services.NewImporterService(userRepo)

	// Загрузочные проверки: двусмысленное дерево останавливает запуск.
	if err := ensureRoot(context.Background(), cfg, nodeRepo); err != nil {
		return nil, err
	}
	if err := ensureFirstAdmin(context.Background(), cfg, userRepo); err != nil {
		return nil, err
	}

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService)
	nodeHandler := handlers.NewNodeHandler(nodeService)
	buttonHandler := handlers.NewButtonHandler(nodeService)
	imageHandler := handlers.NewImageHandler(nodeService)
	hrHandler := handlers.NewHRRequestHandler(hrService, cfg.HRPageSize)
	importHandler := handlers.NewImportHandler(importerService)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, cfg, authHandler, nodeHandler, buttonHandler, imageHandler, hrHandler, importHandler)

	return router, nil
}

// ensureRoot гарантирует единственный корень дерева. Больше одного корня —
// ошибка конфигурации данных, работать с таким деревом нельзя.
func ensureRoot(ctx context.Context, cfg *config.Config, nodeRepo *repository.NodeRepository) error {
	count, err := nodeRepo.CountRootNodes(ctx)
	if err != nil {
		return err
	}
	switch {
	case count > 1:
		return fmt.Errorf("в дереве %d корневых узлов, ожидается один", count)
	case count == 0:
		root := &models.Node{
			Title:      cfg.RootNodeTitle,
			Text:       cfg.RootNodeText,
			LayoutType: models.LayoutText,
			IsActive:   true,
		}
		if err := nodeRepo.CreateNode(ctx, root); err != nil {
			return fmt.Errorf("не удалось создать корневой узел: %w", err)
		}
		logger.Log.Info("Создан корневой узел", zap.Int("node_id", root.ID), zap.String("title", root.Title))
	}
	return nil
}

// ensureFirstAdmin создаёт первого администратора на пустой базе, чтобы
// в админ-панель можно было войти сразу после развёртывания.
func ensureFirstAdmin(ctx context.Context, cfg *config.Config, userRepo *repository.UserRepository) error {
	if cfg.FirstAdminLogin == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	count, err := userRepo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		Login:          cfg.FirstAdminLogin,
		FullName:       cfg.FirstAdminFullName,
		HashedPassword: hashed,
		IsActive:       true,
		Role:           models.RoleAdmin,
	}
	if err := userRepo.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("не удалось создать первого администратора: %w", err)
	}
	logger.Log.Info("Создан первый администратор", zap.String("login", admin.Login))
	return nil
}
