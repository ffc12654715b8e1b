package routes

import (
	orderControllers "github.com/Lihoubrak/shopping-api/controllers/order"
	"github.com/Lihoubrak/shopping-api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, log *logrus.Logger) {
	orders := r.Group("/orders")
	{
		// Create an order from the caller's cart (JWT required)
		orders.POST("/", middleware.ValidateToken, orderControllers.PlaceOrderHandler(db, log))

		// Fetch all orders (admin dashboard)
		orders.GET("/", orderControllers.GetAllOrdersHandler(db, log))

		// Line items of one order, product images stripped
		orders.GET("/OrderDetail/:OrderId", orderControllers.GetOrderDetailHandler(db, log))

		// websocket endpoint for real-time order updates
		orders.GET("/events", orderControllers.OrderEventsHandler)

		// Per-user revenue rows
		orders.GET("/find/:userId", orderControllers.FindUserOrdersHandler(db, log))

		// Monthly revenue, globally and per user
		orders.GET("/income", orderControllers.GetIncomeHandler(db, log))
		orders.GET("/income/export", orderControllers.ExportIncomeHandler(db, log))
		orders.GET("/income/:userId", orderControllers.GetUserIncomeHandler(db, log))

		// Remove one variant's line items (deletes the order when empty)
		orders.DELETE("/:orderId", orderControllers.DeleteOrderProductHandler(db, log))

		// Update order status (adjusts stock on the Approved edges)
		orders.PUT("/:orderId", orderControllers.UpdateOrderStatusHandler(db, log))
	}
}
