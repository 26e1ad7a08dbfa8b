package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-reservation/controllers"
	"hotel-reservation/middleware"
	"hotel-reservation/models"
)

type Controllers struct {
	Search   *controllers.SearchController
	Bookings *controllers.BookingController
	Payments *controllers.PaymentController
	Wallets  *controllers.WalletController
	Agencies *controllers.AgencyController
}

type Options struct {
	JWTSecret   string
	CORSOrigins []string
	Log         *logrus.Logger
}

// SetupRouter wires the controllers under /api.
func SetupRouter(ctl Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(opts.Log))

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", middleware.Identity(opts.JWTSecret))
	{
		// public
		api.GET("/hotels/search", ctl.Search.SearchHotels)
		api.GET("/rates", ctl.Search.GetRate)
		api.GET("/availability", ctl.Search.GetAvailability)
		api.POST("/quotes", ctl.Search.CreateQuote)

		operator := middleware.RequireRole(models.RoleOperator)

		bookings := api.Group("/bookings", middleware.RequireIdentity())
		{
			bookings.POST("", ctl.Bookings.CreateBooking)
			bookings.GET("/:id", ctl.Bookings.GetBooking)
			bookings.POST("/:id/cancel", ctl.Bookings.CancelBooking)
			bookings.POST("/:id/requests", ctl.Bookings.RequestChange)
			bookings.POST("/:id/wallet-payment", ctl.Bookings.PayFromWallet)
			bookings.POST("/:id/checkout", operator, ctl.Bookings.CheckoutBooking)
		}

		payments := api.Group("/payments", middleware.RequireIdentity())
		{
			payments.POST("", ctl.Payments.RecordPayment)
			payments.POST("/:id/verify", operator, ctl.Payments.VerifyPayment)
		}

		wallet := api.Group("/wallet", middleware.RequireIdentity())
		{
			wallet.GET("", ctl.Wallets.GetWallet)
			wallet.POST("/deposits", ctl.Wallets.RequestDeposit)
		}

		agencies := api.Group("/agencies", middleware.RequireIdentity(), operator)
		{
			agencies.POST("/:id/ledger", ctl.Agencies.RecordLedgerEntry)
		}
	}

	return r
}
