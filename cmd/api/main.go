package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/pos-kardex/internal/application/catalog"
	appinventory "github.com/tu-usuario/pos-kardex/internal/application/inventory"
	"github.com/tu-usuario/pos-kardex/internal/application/sales"
	"github.com/tu-usuario/pos-kardex/internal/domain/repository"
	"github.com/tu-usuario/pos-kardex/internal/infrastructure/cache"
	"github.com/tu-usuario/pos-kardex/internal/infrastructure/memory"
	"github.com/tu-usuario/pos-kardex/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pos-kardex/internal/interfaces/http"
	"github.com/tu-usuario/pos-kardex/internal/interfaces/ws"
	"github.com/tu-usuario/pos-kardex/pkg/config"
	"github.com/tu-usuario/pos-kardex/pkg/logger"
)

// storeDeps agrupa lo que aporta el backend de persistencia elegido.
type storeDeps struct {
	txRunner    txRunner
	productRepo repository.ProductRepository
	kardexRepo  repository.KardexRepository
	saleRepo    repository.SaleRepository
	close       func()
}

// txRunner une los dos contratos transaccionales que exponen ambos backends.
type txRunner interface {
	appinventory.TxRunner
	sales.SaleTxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Caché de listados: Redis si está configurado, si no noop.
	var listCache cache.ProductListCache = cache.NoopProductListCache{}
	if cfg.Redis.Addr != "" {
		listCache = cache.NewRedisProductListCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de productos en Redis")
	}

	hub := ws.NewHub(log)
	go hub.Run()

	notifier := sales.MultiNotifier{
		ws.NewSaleNotifier(hub, log),
		cache.NewInvalidator(listCache, log),
	}

	movementUC := appinventory.NewApplyMovementUseCase(store.txRunner)
	projector := appinventory.NewProjector(store.kardexRepo)
	upsertUC := catalog.NewUpsertUseCase(store.txRunner, store.productRepo, movementUC)
	productUC := catalog.NewProductUseCase(store.productRepo)
	settleUC := sales.NewSettleUseCase(store.txRunner, movementUC, notifier)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		UpsertUC:   upsertUC,
		ProductUC:  productUC,
		MovementUC: movementUC,
		Projector:  projector,
		SettleUC:   settleUC,
		SaleRepo:   store.saleRepo,
		ListCache:  listCache,
		Hub:        hub,
		Logger:     log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// buildStore arma los repositorios y el runner transaccional del driver elegido.
func buildStore(ctx context.Context, cfg *config.Config) (*storeDeps, error) {
	if cfg.Store.Driver == "memory" {
		st := memory.New()
		return &storeDeps{
			txRunner:    st,
			productRepo: memory.NewProductRepository(st),
			kardexRepo:  memory.NewKardexRepository(st),
			saleRepo:    memory.NewSaleRepository(st),
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storeDeps{
		txRunner:    postgres.NewTxRunner(pool),
		productRepo: postgres.NewProductRepository(pool),
		kardexRepo:  postgres.NewKardexRepository(pool),
		saleRepo:    postgres.NewSaleRepository(pool),
		close:       pool.Close,
	}, nil
}
