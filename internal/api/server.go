package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tokobajukeren/pos-api/docs"
	v1 "github.com/tokobajukeren/pos-api/internal/api/handler/v1"
	"github.com/tokobajukeren/pos-api/internal/api/middleware"
	"github.com/tokobajukeren/pos-api/internal/config"
	"github.com/tokobajukeren/pos-api/internal/mailer"
	"github.com/tokobajukeren/pos-api/internal/pkg/jwthelper"
	"github.com/tokobajukeren/pos-api/internal/receipt"
	"github.com/tokobajukeren/pos-api/internal/repository"
	"github.com/tokobajukeren/pos-api/internal/repository/dao"
	"github.com/tokobajukeren/pos-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	blocklist *jwthelper.Blocklist
	auth      *service.AuthService
	notifier  *service.WelcomeNotifier
}

type repositories struct {
	users        *repository.UserRepository
	products     *repository.ProductRepository
	members      *repository.MemberRepository
	transactions *repository.TransactionRepository
	dataset      *repository.DatasetRepository
}

func newRepositories(db *gorm.DB) repositories {
	return repositories{
		users:        repository.NewUserRepository(dao.NewUserDAO(db)),
		products:     repository.NewProductRepository(dao.NewProductDAO(db)),
		members:      repository.NewMemberRepository(dao.NewMemberDAO(db)),
		transactions: repository.NewTransactionRepository(dao.NewTransactionDAO(db)),
		dataset:      repository.NewDatasetRepository(dao.NewDatasetDAO(db)),
	}
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:    conf,
		Router:    engine,
		blocklist: jwthelper.NewBlocklist(),
	}

	s.MountMiddlewares()

	loc, err := conf.Store.Location()
	if err != nil {
		zap.L().Warn("falling back to UTC for reports", zap.Error(err))
		loc = time.UTC
	}

	repos := newRepositories(db)

	userSvc := service.NewUserService(repos.users)
	carts := service.NewCartService(repos.products)
	s.auth = service.NewAuthService(repos.users, s.blocklist, carts)

	var notifier service.MemberNotifier
	if conf.Mail.Enabled {
		s.notifier = service.NewWelcomeNotifier(mailer.NewSMTPMailer(conf.Mail), repos.members, conf.Store.Name, conf.Mail.Timeout)
		notifier = s.notifier
	}

	store := receipt.Store{
		Name:    conf.Store.Name,
		Address: conf.Store.Address,
		Phone:   conf.Store.Phone,
		Footer:  conf.Store.Footer,
	}

	checkout := service.NewCheckoutService(carts, repos.members, repos.transactions, service.NewIDGenerator())
	reports := service.NewReportService(repos.transactions, repos.members, loc, conf.Store.TopProducts)
	dashboard := service.NewDashboardService(repos.products, repos.members, repos.transactions, loc, conf.Store.LowStockThreshold, conf.Store.TopProducts)
	backups := service.NewBackupService(repos.products, repos.members, repos.transactions, repos.dataset, carts)

	s.MountHandlers(handlers{
		auth:         v1.NewAuthHandler(conf.API, s.auth, userSvc),
		products:     v1.NewProductHandler(service.NewProductService(repos.products)),
		members:      v1.NewMemberHandler(service.NewMemberService(repos.members, notifier, conf.Store.DefaultMemberDiscount)),
		cart:         v1.NewCartHandler(carts, checkout, userSvc),
		transactions: v1.NewTransactionHandler(service.NewTransactionService(repos.transactions, repos.members, store, loc)),
		reports:      v1.NewReportHandler(reports, dashboard),
		settings:     v1.NewSettingsHandler(backups),
	})

	return s
}

// Bootstrap provisions the configured admin account on an empty database.
func (s *Server) Bootstrap(ctx context.Context) error {
	created, err := s.auth.EnsureDefaultAdmin(ctx, s.Config.Admin.Username, s.Config.Admin.Password)
	if err != nil {
		return fmt.Errorf("s.auth.EnsureDefaultAdmin -> %w", err)
	}
	if created {
		zap.L().Warn("default admin account created, change its password", zap.String("username", s.Config.Admin.Username))
	}

	return nil
}

// Close waits for welcome e-mails still in flight.
func (s *Server) Close() {
	if s.notifier != nil {
		s.notifier.Wait()
	}
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

type handlers struct {
	auth         *v1.AuthHandler
	products     *v1.ProductHandler
	members      *v1.MemberHandler
	cart         *v1.CartHandler
	transactions *v1.TransactionHandler
	reports      *v1.ReportHandler
	settings     *v1.SettingsHandler
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/login", h.auth.HandleLogin)
	}

	api := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey, s.blocklist).VerifyJWT())
	{
		api.POST("/auth/logout", h.auth.HandleLogout)
		api.GET("/auth/me", h.auth.HandleMe)
		api.PUT("/auth/password", h.auth.HandleChangePassword)

		api.GET("/products", h.products.HandleListProducts)
		api.POST("/products", h.products.HandleCreateProduct)
		api.GET("/products/:productID", h.products.HandleGetProduct)
		api.PUT("/products/:productID", h.products.HandleUpdateProduct)
		api.DELETE("/products/:productID", h.products.HandleDeleteProduct)

		api.GET("/members", h.members.HandleListMembers)
		api.POST("/members", h.members.HandleRegisterMember)
		api.GET("/members/:memberID", h.members.HandleGetMember)
		api.PUT("/members/:memberID", h.members.HandleUpdateMember)
		api.DELETE("/members/:memberID", h.members.HandleDeleteMember)

		api.GET("/cart", h.cart.HandleGetCart)
		api.DELETE("/cart", h.cart.HandleClearCart)
		api.POST("/cart/items", h.cart.HandleAddCartItem)
		api.DELETE("/cart/items/:cartID", h.cart.HandleRemoveCartItem)
		api.POST("/checkout", h.cart.HandleCheckout)

		api.GET("/transactions", h.transactions.HandleListTransactions)
		api.GET("/transactions/:transactionID", h.transactions.HandleGetTransaction)
		api.GET("/transactions/:transactionID/receipt", h.transactions.HandleGetReceipt)

		api.GET("/reports", h.reports.HandleGetReport)
		api.GET("/reports/export", h.reports.HandleExportReport)
		api.GET("/dashboard", h.reports.HandleGetDashboard)

		api.GET("/settings/backup", h.settings.HandleExportBackup)
		api.POST("/settings/restore", h.settings.HandleRestoreBackup)
		api.POST("/settings/reset", h.settings.HandleResetData)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Toko Baju Keren POS API"
	docs.SwaggerInfo.Description = "Point of sale for a clothing store: catalog, members, cashier, reports and backups."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
