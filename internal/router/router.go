package router

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"stratify/internal/config"
	apperrors "stratify/internal/errors"
	"stratify/internal/handler"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Asset       *handler.AssetHandler
	Sector      *handler.SectorHandler
	Portfolio   *handler.PortfolioHandler
	Position    *handler.PositionHandler
	Transaction *handler.TransactionHandler
	User        *handler.UserHandler
	Watchlist   *handler.WatchlistHandler
	Alert       *handler.AlertHandler
	Scenario    *handler.ScenarioHandler
	Audit       *handler.AuditHandler
	Health      *handler.HealthHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, h Handlers) {
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = NewValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if cfg.RateLimitRPS > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitRPS))))
	}

	e.GET("/healthz", h.Health.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	asset := e.Group("/asset")
	asset.GET("", h.Asset.ListAssets)
	asset.POST("", h.Asset.CreateAsset)
	asset.GET("/sector/:id", h.Asset.GetAssetsBySector)
	asset.GET("/:id", h.Asset.GetAsset)
	asset.PUT("/:id", h.Asset.UpdateAsset)
	asset.DELETE("/:id", h.Asset.DeleteAsset)
	asset.GET("/:id/price-history", h.Asset.GetPriceHistory)

	sector := e.Group("/sector")
	sector.GET("", h.Sector.ListSectors)
	sector.POST("", h.Sector.CreateSector)
	sector.GET("/:id", h.Sector.GetSector)

	portfolio := e.Group("/portfolio")
	portfolio.GET("", h.Portfolio.ListPortfolios)
	portfolio.POST("", h.Portfolio.CreatePortfolio)
	portfolio.GET("/:id", h.Portfolio.GetPortfolio)
	portfolio.PUT("/:id", h.Portfolio.UpdatePortfolio)
	portfolio.DELETE("/:id", h.Portfolio.DeletePortfolio)

	position := e.Group("/position")
	position.GET("", h.Position.ListPositions)
	position.POST("", h.Position.CreatePosition)
	position.GET("/:id", h.Position.GetPosition)
	position.PUT("/:id", h.Position.UpdatePosition)
	position.DELETE("/:id", h.Position.DeletePosition)

	transaction := e.Group("/transaction")
	transaction.GET("", h.Transaction.ListTransactions)
	transaction.POST("", h.Transaction.CreateTransaction)
	transaction.GET("/:id", h.Transaction.GetTransaction)
	transaction.PUT("/:id", h.Transaction.UpdateTransaction)
	transaction.DELETE("/:id", h.Transaction.DeleteTransaction)

	user := e.Group("/user")
	user.GET("", h.User.ListUsers)
	user.POST("", h.User.CreateUser)
	user.GET("/:id", h.User.GetUser)
	user.PUT("/:id", h.User.UpdateUser)
	user.DELETE("/:id", h.User.DeleteUser)
	user.PUT("/:id/role", h.User.UpdateUserRole)
	user.GET("/:id/activity", h.User.GetUserActivity)

	watchlist := e.Group("/watchlist")
	watchlist.GET("", h.Watchlist.ListWatchlists)
	watchlist.POST("", h.Watchlist.CreateWatchlist)
	watchlist.GET("/:id", h.Watchlist.GetWatchlist)
	watchlist.PUT("/:id", h.Watchlist.UpdateWatchlist)
	watchlist.DELETE("/:id", h.Watchlist.DeleteWatchlist)

	alert := e.Group("/alert")
	alert.GET("", h.Alert.ListAlerts)
	alert.POST("", h.Alert.CreateAlert)
	alert.GET("/:id", h.Alert.GetAlert)

	scenario := e.Group("/scenario")
	scenario.GET("", h.Scenario.ListScenarios)
	scenario.POST("", h.Scenario.CreateScenario)
	scenario.GET("/:id", h.Scenario.GetScenario)

	audit := e.Group("/audit/events")
	audit.GET("", h.Audit.ListAuditEvents)
	audit.POST("", h.Audit.CreateAuditEvent)
	audit.GET("/:id", h.Audit.GetAuditEvent)
}

// ErrorHandler renders every error, including routing failures and
// recovered panics, in the failure envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	resp := apperrors.ErrorResponse{
		Success:    false,
		Error:      http.StatusText(http.StatusInternalServerError),
		StatusCode: http.StatusInternalServerError,
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		resp.StatusCode = he.Code
		switch msg := he.Message.(type) {
		case apperrors.ErrorResponse:
			resp = msg
		case string:
			resp.Error = msg
		case error:
			resp.Error = msg.Error()
		default:
			resp.Error = fmt.Sprint(msg)
		}
	} else {
		c.Logger().Error(err)
		resp.Error = err.Error()
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(resp.StatusCode)
	} else {
		err = c.JSON(resp.StatusCode, resp)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds a validator that reports fields by their JSON name.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
