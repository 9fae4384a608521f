package cmd

import (
	"context"
	"fmt"
	"net/http"

	"restaurant/api"
	"restaurant/api/health"
	apicart "restaurant/api/cart"
	apikitchen "restaurant/api/kitchen"
	apimenu "restaurant/api/menu"
	apiorder "restaurant/api/order"
	cartapp "restaurant/application/cart"
	"restaurant/application/integration"
	kitchenapp "restaurant/application/kitchen"
	menuapp "restaurant/application/menu"
	orderapp "restaurant/application/order"
	"restaurant/config"
	"restaurant/domain/cart"
	"restaurant/domain/kitchen"
	"restaurant/domain/menu"
	"restaurant/domain/order"
	"restaurant/infrastructure/crm"
	"restaurant/infrastructure/event"
	"restaurant/infrastructure/idgen"
	"restaurant/infrastructure/persistence/memory"
	"restaurant/infrastructure/persistence/mysql"
	redisstore "restaurant/infrastructure/persistence/redis"
	"restaurant/infrastructure/persistence/retry"
	"restaurant/pkg/logger"
	"restaurant/pkg/observability"

	"go.uber.org/zap"
)

type closer struct {
	name string
	fn   func(ctx context.Context) error
}

// AppBuilder wires configuration, storage, use cases, listeners and HTTP.
type AppBuilder struct {
	cfg     *config.Config
	crm     integration.CrmProvider
	closers []closer
	checks  map[string]health.Checker
}

func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg, checks: map[string]health.Checker{}}
}

// WithCrmProvider replaces the configured CRM transport.
func (b *AppBuilder) WithCrmProvider(p integration.CrmProvider) *AppBuilder {
	b.crm = p
	return b
}

type repositories struct {
	meals         menu.Repository
	orders        order.Repository
	kitchenOrders kitchen.Repository
	carts         interface {
		cart.Repository
		cart.Remover
	}
}

// Build returns the assembled App. On error everything opened so far is closed.
func (b *AppBuilder) Build(ctx context.Context) (app *App, err error) {
	if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err != nil {
			b.close(context.Background())
		}
	}()

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	shutdownTracing, err := observability.SetupTracing(ctx, b.cfg.App, b.cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	b.closers = append(b.closers, closer{name: "tracing", fn: shutdownTracing})

	publisher := event.NewPublisher()

	repos, err := b.buildRepositories(ctx, publisher)
	if err != nil {
		return nil, err
	}
	crmProvider := b.buildCrmProvider()

	// Menu
	getMenu := menuapp.NewGetMenu(repos.meals)
	getMeal := menuapp.NewGetMealByID(repos.meals)
	addMeal := menuapp.NewAddMealToMenu(idgen.MealIDGenerator{}, repos.meals)
	removeMeal := menuapp.NewRemoveMealFromMenu(repos.meals)

	// Cart
	getCart := cartapp.NewGetCart(repos.carts)
	addToCart := cartapp.NewAddMealToCart(idgen.CartIDGenerator{}, repos.carts, repos.meals)
	removeFromCart := cartapp.NewRemoveMealFromCart(repos.carts)

	// Orders
	orderUseCases := apiorder.UseCases{
		Checkout: orderapp.NewCheckout(
			idgen.OrderIDGenerator{},
			repos.carts,
			order.NewActiveOrderRule(repos.orders),
			orderapp.NewMealPriceProvider(repos.meals),
			repos.orders,
		),
		GetOrder:      orderapp.NewGetOrderByID(repos.orders),
		GetOrders:     orderapp.NewGetOrders(repos.orders),
		PayOrder:      orderapp.NewPayOrder(repos.orders),
		ConfirmOrder:  orderapp.NewConfirmOrder(repos.orders),
		CompleteOrder: orderapp.NewCompleteOrder(repos.orders),
		CancelOrder:   orderapp.NewCancelOrder(repos.orders),
	}

	// Kitchen
	createKitchenOrder := kitchenapp.NewCreateOrderHandler(repos.kitchenOrders)
	getKitchenOrders := kitchenapp.NewGetOrders(repos.kitchenOrders)
	cookOrder := kitchenapp.NewCookOrder(repos.kitchenOrders)

	err = integration.Register(publisher,
		integration.NewRemoveCartAfterCheckoutRule(repos.orders, repos.carts),
		integration.NewSendOrderToCrmAfterPaymentRule(repos.orders, crmProvider),
		integration.NewSendOrderToKitchenAfterConfirmationRule(repos.orders, repos.meals, createKitchenOrder),
		integration.NewCompleteOrderAfterCookingRule(repos.orders, orderUseCases.CompleteOrder),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register listeners: %w", err)
	}

	router := api.NewRouter(b.cfg,
		health.NewController(b.cfg, b.checks),
		apimenu.NewController(getMenu, getMeal, addMeal, removeMeal),
		apicart.NewController(getCart, addToCart, removeFromCart),
		apiorder.NewController(orderUseCases),
		apikitchen.NewController(getKitchenOrders, cookOrder),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config:  b.cfg,
		router:  router,
		server:  server,
		closers: b.closers,
	}, nil
}

func (b *AppBuilder) buildRepositories(ctx context.Context, publisher *event.Publisher) (*repositories, error) {
	repos := &repositories{}

	switch b.cfg.Database.Type {
	case "mysql", "postgres", "sqlite":
		db, err := mysql.FromAppConfig(b.cfg).Connect()
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, closer{name: "database", fn: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}})
		if err := mysql.Ping(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		if b.cfg.Database.AutoMigrate {
			if err := mysql.AutoMigrate(db); err != nil {
				return nil, fmt.Errorf("failed to auto migrate: %w", err)
			}
		}
		b.checks["database"] = func(ctx context.Context) error { return mysql.Ping(ctx, db) }

		stores := mysql.NewRepositories(db, publisher, retry.FromAppConfig(b.cfg))
		repos.meals = stores.Meals
		repos.orders = stores.Orders
		repos.kitchenOrders = stores.KitchenOrders
		logger.Info("Using gorm persistence", zap.String("driver", b.cfg.Database.Type))

	default:
		repos.meals = memory.NewMealRepository(publisher)
		repos.orders = memory.NewCustomerOrderRepository(publisher)
		repos.kitchenOrders = memory.NewKitchenOrderRepository(publisher)
		logger.Info("Using in-memory persistence")
	}

	if b.cfg.Redis.Enabled {
		client, err := redisstore.NewClient(ctx, b.cfg.Redis)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, closer{name: "redis", fn: func(context.Context) error { return client.Close() }})
		b.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		repos.carts = redisstore.NewCartRepository(client, publisher, b.cfg.Redis.CartTTL)
	} else {
		repos.carts = memory.NewCartRepository(publisher)
	}

	return repos, nil
}

func (b *AppBuilder) buildCrmProvider() integration.CrmProvider {
	if b.crm != nil {
		return b.crm
	}
	if !b.cfg.CRM.Kafka.Enabled {
		return crm.LoggingProvider{}
	}
	provider := crm.NewKafkaProvider(crm.NewKafkaWriter(b.cfg.CRM.Kafka), b.cfg.CRM.Kafka)
	b.closers = append(b.closers, closer{name: "kafka", fn: func(context.Context) error { return provider.Close() }})
	logger.Info("CRM orders go to Kafka",
		zap.Strings("brokers", b.cfg.CRM.Kafka.Brokers),
		zap.String("topic", b.cfg.CRM.Kafka.Topic))
	return provider
}

func (b *AppBuilder) close(ctx context.Context) {
	closeAll(ctx, b.closers)
	b.closers = nil
}
