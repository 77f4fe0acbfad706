package provider

import (
	"time"

	"github.com/prostore-go/internal/authz"
	"github.com/prostore-go/internal/cache"
	"github.com/prostore-go/internal/config"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/payment/paypal"
	"github.com/prostore-go/internal/payment/stripe"
	"github.com/prostore-go/internal/pricing"
	"github.com/prostore-go/internal/queue"
	"github.com/prostore-go/internal/repository"
	"github.com/prostore-go/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo      repository.UserRepository
	ProductRepo   repository.ProductRepository
	CartRepo      repository.CartRepository
	OrderRepo     repository.OrderRepository
	ReviewRepo    repository.ReviewRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService     *authz.Service
	UserService      *service.UserService
	ProductService   *service.ProductService
	CartService      *service.CartService
	OrderService     *service.OrderService
	PaymentService   *service.PaymentService
	ReviewService    *service.ReviewService
	DashboardService *service.DashboardService
	CaptchaService   *service.CaptchaService
	EmailService     *service.EmailService
	UploadService    *service.UploadService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	rule := pricing.RuleFromStrings(
		c.Config.Pricing.FreeShippingThreshold,
		c.Config.Pricing.FlatShippingFee,
		c.Config.Pricing.TaxRate,
	)

	c.UserService = service.NewUserService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, rule)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.UserRepo, c.QueueClient, c.Config.Order.PaymentExpireMinutes)
	c.PaymentService = service.NewPaymentService(c.OrderRepo, c.ProductRepo, c.buildPayPalGateway(), c.buildStripeGateway(), c.QueueClient, c.Config.Stripe.Currency)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.EmailService = service.NewEmailService(c.Config.Email)
	c.UploadService = service.NewUploadService(c.Config.Upload)
}

func (c *Container) buildPayPalGateway() service.PayPalGateway {
	if !c.Config.PayPal.Enabled {
		return nil
	}
	client, err := paypal.NewClient(paypal.Config{
		ClientID:     c.Config.PayPal.ClientID,
		ClientSecret: c.Config.PayPal.ClientSecret,
		BaseURL:      c.Config.PayPal.APIBase,
		Timeout:      time.Duration(c.Config.PayPal.TimeoutMS) * time.Millisecond,
	})
	if err != nil {
		logger.Errorw("provider_init_paypal_failed", "error", err)
		return nil
	}
	return client
}

func (c *Container) buildStripeGateway() service.StripeGateway {
	if !c.Config.Stripe.Enabled {
		return nil
	}
	client, err := stripe.NewClient(stripe.Config{
		SecretKey:  c.Config.Stripe.SecretKey,
		APIBaseURL: c.Config.Stripe.APIBase,
		Timeout:    time.Duration(c.Config.Stripe.TimeoutMS) * time.Millisecond,
	})
	if err != nil {
		logger.Errorw("provider_init_stripe_failed", "error", err)
		return nil
	}
	return client
}
