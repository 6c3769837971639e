package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/rafflehub/raffle-api/docs"
	v1 "github.com/rafflehub/raffle-api/internal/api/handler/v1"
	"github.com/rafflehub/raffle-api/internal/api/middleware"
	"github.com/rafflehub/raffle-api/internal/config"
	"github.com/rafflehub/raffle-api/internal/repository"
	"github.com/rafflehub/raffle-api/internal/repository/dao"
	"github.com/rafflehub/raffle-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userSvc := s.initUserService(db)
	authHandler := s.initAuthHandler(db, userSvc)
	raffleHandler := s.initRaffleHandler(db)
	ticketHandler := s.initTicketHandler(db)
	s.MountHandlers(authHandler, raffleHandler, ticketHandler, userSvc)

	return s
}

func (s *Server) initUserService(db *gorm.DB) *service.UserService {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)

	return service.NewUserService(repo)
}

func (s *Server) initAuthHandler(db *gorm.DB, userSvc *service.UserService) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)

	return v1.NewAuthHandler(s.Config.API, svc, userSvc)
}

func (s *Server) initRaffleHandler(db *gorm.DB) *v1.RaffleHandler {
	raffleDAO := dao.NewRaffleDAO(db)
	repo := repository.NewRaffleRepository(raffleDAO)
	svc := service.NewRaffleService(repo)

	return v1.NewRaffleHandler(svc)
}

func (s *Server) initTicketHandler(db *gorm.DB) *v1.TicketHandler {
	ticketDAO := dao.NewTicketDAO(db)
	repo := repository.NewTicketRepository(ticketDAO)
	svc := service.NewTicketService(repo)

	return v1.NewTicketHandler(svc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.Metrics())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	raffleHandler *v1.RaffleHandler,
	ticketHandler *v1.TicketHandler,
	roleChecker middleware.RoleChecker,
) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)
		public.GET("/raffles", raffleHandler.HandleListRaffles)
		public.GET("/raffles/:raffleID", raffleHandler.HandleGetRaffle)
		public.GET("/winners", raffleHandler.HandleListWinners)
	}

	users := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		users.GET("/tickets", ticketHandler.HandleListTickets)
	}

	admin := s.Router.Group(basePath, authenticator.VerifyJWT(), middleware.RequireAdmin(roleChecker))
	{
		admin.POST("/raffles", raffleHandler.HandleCreateRaffle)
		admin.PATCH("/raffles/:raffleID", raffleHandler.HandleUpdateRaffle)
		admin.GET("/raffles/stats", raffleHandler.HandleGetStats)
		admin.GET("/raffles/export", raffleHandler.HandleExportRaffles)
		admin.POST("/auth/assign-role", authHandler.HandleAssignRole)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", middleware.MetricsHandler())

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Raffle API"
	docs.SwaggerInfo.Description = "Ticketing API for time-bounded prize raffles."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
