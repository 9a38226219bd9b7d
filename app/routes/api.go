// Package routes mounts the public API surface onto the router.
package routes

import (
	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/controllers"
	"github.com/hassanmehmood/medicart/app/services"
	"github.com/hassanmehmood/medicart/pkg/auth"
	"github.com/hassanmehmood/medicart/pkg/graphql"
	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/middleware"
	"github.com/hassanmehmood/medicart/pkg/rbac"
	"github.com/hassanmehmood/medicart/pkg/router"
	"github.com/hassanmehmood/medicart/pkg/ws"
)

// RegisterAPI wires every endpoint. db is the shared handle; feed is the
// live order hub served at /ws/orders.
func RegisterAPI(r *router.Router, db *gorm.DB, feed *ws.Hub) {
	authSvc := services.NewAuthService(db)
	catalogSvc := services.NewCatalogService(db)
	cartSvc := services.NewCartService(db)
	addressSvc := services.NewAddressService(db)
	checkoutSvc := services.NewCheckoutService(db)
	orderSvc := services.NewOrderService(db)
	reviewSvc := services.NewReviewService(db)
	dashboardSvc := services.NewDashboardService(db)
	notificationSvc := services.NewNotificationService(db)
	userSvc := services.NewUserService(db)

	authCtl := controllers.NewAuthController(authSvc)
	catalogCtl := controllers.NewCatalogController(catalogSvc)
	cartCtl := controllers.NewCartController(cartSvc)
	addressCtl := controllers.NewAddressController(addressSvc)
	orderCtl := controllers.NewOrderController(checkoutSvc, orderSvc)
	reviewCtl := controllers.NewReviewController(reviewSvc)
	dashboardCtl := controllers.NewDashboardController(dashboardSvc)
	notificationCtl := controllers.NewNotificationController(notificationSvc)
	userCtl := controllers.NewUserController(userSvc)

	api := r.Group("/api")

	// public
	api.Post("/register", "auth.register", authCtl.Register)
	api.Post("/login", "auth.login", authCtl.Login)
	api.Get("/categories", "categories.index", catalogCtl.Categories)
	api.Get("/medicines", "medicines.index", catalogCtl.Medicines)
	api.Get("/medicines/{id}", "medicines.show", catalogCtl.Medicine)
	api.Get("/medicines/{id}/reviews", "reviews.index", reviewCtl.ForMedicine)

	// read-only catalog over GraphQL
	if schema, err := catalogSchema(catalogSvc); err != nil {
		logger.Error("graphql schema build failed", "error", err)
	} else {
		api.Post("/graphql", "graphql", graphql.Handler(schema))
	}

	// authenticated
	user := api.Group("", middleware.Auth)
	user.Get("/profile", "auth.profile", authCtl.Profile)

	user.Get("/cart", "cart.show", cartCtl.Show)
	user.Post("/cart", "cart.add", cartCtl.Add)
	user.Put("/cart/{id}", "cart.update", cartCtl.Update)
	user.Delete("/cart/{id}", "cart.remove", cartCtl.Remove)
	user.Delete("/cart", "cart.clear", cartCtl.Clear)

	user.Get("/addresses", "addresses.index", addressCtl.List)
	user.Post("/addresses", "addresses.create", addressCtl.Create)
	user.Put("/addresses/{id}", "addresses.update", addressCtl.Update)
	user.Delete("/addresses/{id}", "addresses.delete", addressCtl.Delete)
	user.Put("/addresses/{id}/default", "addresses.default", addressCtl.SetDefault)

	user.Post("/orders", "orders.place", orderCtl.Place)
	user.Get("/orders", "orders.mine", orderCtl.Mine)
	user.Get("/orders/{id}", "orders.show", orderCtl.Show)
	user.Get("/orders/{id}/items", "orders.items", orderCtl.Items)

	user.Post("/medicines/{id}/reviews", "reviews.save", reviewCtl.Upsert)
	user.Delete("/reviews/{id}", "reviews.delete", reviewCtl.Delete)

	user.Get("/notifications", "notifications.inbox", notificationCtl.Inbox)
	user.Put("/notifications/{id}/read", "notifications.read", notificationCtl.MarkRead)

	user.Get("/dashboard", "dashboard.me", dashboardCtl.Me)

	// admin
	admin := api.Group("/admin", middleware.Auth, rbac.Require(auth.RoleAdmin))
	admin.Get("/dashboard", "admin.dashboard", dashboardCtl.Overview)
	admin.Get("/reports/sales", "admin.reports.sales", dashboardCtl.SalesReport)
	admin.Get("/users", "admin.users.index", userCtl.List)

	admin.Post("/categories", "admin.categories.create", catalogCtl.CreateCategory)
	admin.Put("/categories/{id}", "admin.categories.update", catalogCtl.UpdateCategory)
	admin.Delete("/categories/{id}", "admin.categories.delete", catalogCtl.DeleteCategory)

	admin.Post("/medicines", "admin.medicines.create", catalogCtl.CreateMedicine)
	admin.Put("/medicines/{id}", "admin.medicines.update", catalogCtl.UpdateMedicine)
	admin.Delete("/medicines/{id}", "admin.medicines.delete", catalogCtl.DeleteMedicine)
	admin.Post("/medicines/{id}/image", "admin.medicines.image", catalogCtl.UploadImage)

	admin.Get("/orders", "admin.orders.index", orderCtl.All)
	admin.Put("/orders/{id}/status", "admin.orders.status", orderCtl.UpdateStatus)

	// admin live order feed
	r.Get("/ws/orders", "ws.orders", feed.Upgrade)
}
