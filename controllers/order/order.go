package orderControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Lihoubrak/shopping-api/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type UserInfo struct {
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

type PlaceOrderRequest struct {
	UserInfo UserInfo `json:"userInfo" binding:"required"`
}

type DeleteOrderProductRequest struct {
	ProductVariantID uint `json:"ProductVariantId" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Handlers --------

// PlaceOrderHandler turns the caller's cart into an order. The order row, its
// line items and the cart purge all commit or roll back together.
func PlaceOrderHandler(db *gorm.DB, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var cartItems []models.Cart
		if err := db.Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
			log.Errorf("failed to load cart for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while creating the order"})
			return
		}
		if len(cartItems) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}

		order := models.Order{
			UserID:  userID,
			Email:   req.UserInfo.Email,
			Address: strings.Join([]string{req.UserInfo.Address, req.UserInfo.City, req.UserInfo.Country}, " "),
			Phone:   req.UserInfo.Phone,
			Payment: "cash on delivery",
			Status:  models.StatusPending,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			lines := make([]models.OrderProduct, 0, len(cartItems))
			for _, item := range cartItems {
				lines = append(lines, models.OrderProduct{
					OrderID:          order.ID,
					ProductVariantID: item.ProductVariantID,
					Quantity:         item.Quantity,
				})
			}
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}

			return tx.Where("user_id = ?", userID).Delete(&models.Cart{}).Error
		})
		if err != nil {
			log.Errorf("failed to create order for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while creating the order"})
			return
		}

		broadcastOrderEvent(OrderEvent{Type: "order_created", OrderID: order.ID, Status: order.Status})
		c.JSON(http.StatusOK, gin.H{"message": "Order created successfully"})
	}
}

// GetAllOrdersHandler returns every order with its user and line items, each
// line expanded to its variant and product.
func GetAllOrdersHandler(db *gorm.DB, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Products.ProductVariant.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			log.Errorf("failed to fetch orders: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetOrderDetailHandler returns the line items of one order. The product's
// image bytes stay out of the payload; everything else is preloaded. An
// unknown order yields an empty array, not a 404.
func GetOrderDetailHandler(db *gorm.DB, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("OrderId")

		var lines []models.OrderProduct
		if err := db.
			Where("order_id = ?", orderID).
			Preload("ProductVariant").
			Preload("ProductVariant.Product", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "title", "price", "created_at", "updated_at")
			}).
			Find(&lines).Error; err != nil {
			log.Errorf("failed to fetch details for order %s: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order details"})
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}

// DeleteOrderProductHandler removes the line items matching the given variant
// from an order. An order left with no lines is deleted with them.
func DeleteOrderProductHandler(db *gorm.DB, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderId")

		var req DeleteOrderProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			log.Errorf("failed to look up order %s: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.
				Where("order_id = ? AND product_variant_id = ?", order.ID, req.ProductVariantID).
				Delete(&models.OrderProduct{}).Error; err != nil {
				return err
			}

			var remaining int64
			if err := tx.Model(&models.OrderProduct{}).
				Where("order_id = ?", order.ID).
				Count(&remaining).Error; err != nil {
				return err
			}
			if remaining == 0 {
				return tx.Delete(&order).Error
			}
			return nil
		})
		if err != nil {
			log.Errorf("failed to delete product %d from order %s: %v", req.ProductVariantID, orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order product deleted successfully"})
	}
}

// UpdateOrderStatusHandler persists a new order status. Entering Approved
// deducts each line's quantity from its variant's stock, leaving Approved
// returns it; every other transition leaves stock alone (models.TransitionDelta).
func UpdateOrderStatusHandler(db *gorm.DB, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderId")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := models.ParseStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			log.Errorf("failed to look up order %s: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		delta := models.TransitionDelta(order.Status, newStatus)

		err = db.Transaction(func(tx *gorm.DB) error {
			if delta != models.StockNone {
				var lines []models.OrderProduct
				if err := tx.Where("order_id = ?", order.ID).Find(&lines).Error; err != nil {
					return err
				}
				for _, line := range lines {
					adjust := gorm.Expr("quantity - ?", line.Quantity)
					if delta == models.StockIncrement {
						adjust = gorm.Expr("quantity + ?", line.Quantity)
					}
					if err := tx.Model(&models.ProductVariant{}).
						Where("id = ?", line.ProductVariantID).
						UpdateColumn("quantity", adjust).Error; err != nil {
						return err
					}
				}
			}
			return tx.Model(&order).Update("status", newStatus).Error
		})
		if err != nil {
			log.Errorf("failed to update status of order %s: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		broadcastOrderEvent(OrderEvent{Type: "order_status_updated", OrderID: order.ID, Status: newStatus})
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}
