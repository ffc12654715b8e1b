package orderControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// UserOrderRow is one (order, variant) revenue line for the per-user report.
type UserOrderRow struct {
	ID        uint      `json:"id"`
	Product   string    `json:"product"`
	VariantID uint      `gorm:"column:variant_id" json:"variantId"`
	Image     string    `gorm:"column:img" json:"img"`
	Username  string    `json:"username"`
	Customer  string    `json:"customer"`
	Date      time.Time `json:"date"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	Amount    float64   `json:"amount"`
}

type IncomeRow struct {
	Total float64 `json:"Total"`
	Month int     `gorm:"column:name" json:"name"`
}

type UserIncomeRow struct {
	Total    float64 `json:"Total"`
	Month    int     `gorm:"column:name" json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Avatar   string  `json:"avatar"`
}

const userOrdersQuery = `
SELECT
	orders.id,
	products.title AS product,
	product_variants.id AS variant_id,
	product_variants.image AS img,
	users.username,
	orders.email AS customer,
	order_products.created_at AS date,
	orders.payment AS method,
	orders.status,
	SUM(order_products.quantity * products.price) AS amount
FROM order_products
	INNER JOIN orders ON orders.id = order_products.order_id
	INNER JOIN product_variants ON order_products.product_variant_id = product_variants.id
	INNER JOIN products ON products.id = product_variants.product_id
	INNER JOIN users ON users.id = orders.user_id
WHERE users.id = ?
GROUP BY
	orders.id,
	products.title,
	product_variants.image,
	users.username,
	orders.email,
	order_products.created_at,
	orders.payment,
	orders.status,
	product_variants.id`

const incomeQuery = `
SELECT
	SUM(order_products.quantity * products.price) AS total,
	EXTRACT(MONTH FROM order_products.created_at)::int AS name
FROM order_products
	INNER JOIN product_variants ON order_products.product_variant_id = product_variants.id
	INNER JOIN products ON product_variants.product_id = products.id
WHERE order_products.created_at >= ?
GROUP BY EXTRACT(MONTH FROM order_products.created_at)`

const userIncomeQuery = `
SELECT
	SUM(order_products.quantity * products.price) AS total,
	EXTRACT(MONTH FROM order_products.created_at)::int AS name,
	users.username,
	users.email,
	users.avatar
FROM order_products
	INNER JOIN product_variants ON order_products.product_variant_id = product_variants.id
	INNER JOIN products ON product_variants.product_id = products.id
	INNER JOIN orders ON orders.id = order_products.order_id
	INNER JOIN users ON users.id = orders.user_id
WHERE order_products.created_at >= ?
	AND orders.user_id = ?
GROUP BY
	EXTRACT(MONTH FROM order_products.created_at),
	users.username,
	users.email,
	users.avatar`

// incomeWindowStart returns the first day of the month two months before now,
// in now's location. time.Date normalizes the year when the month underflows.
func incomeWindowStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()-2, 1, 0, 0, 0, 0, now.Location())
}

// FindUserOrdersHandler returns one revenue row per (order, variant) for a
// user, with amount = SUM(quantity * price).
func FindUserOrdersHandler(db *gorm.DB, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "No orders found for the given user ID"})
			return
		}

		var rows []UserOrderRow
		if err := db.Raw(userOrdersQuery, userID).Scan(&rows).Error; err != nil {
			log.Errorf("failed to fetch orders for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while fetching orders"})
			return
		}

		if len(rows) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "No orders found for the given user ID"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// GetIncomeHandler returns monthly revenue totals since the first day of the
// month two months back.
func GetIncomeHandler(db *gorm.DB, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := fetchIncome(db)
		if err != nil {
			log.Errorf("failed to fetch income: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// GetUserIncomeHandler is the per-user variant of GetIncomeHandler, grouped
// by month and user.
func GetUserIncomeHandler(db *gorm.DB, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var rows []UserIncomeRow
		if err := db.Raw(userIncomeQuery, incomeWindowStart(time.Now()), userID).Scan(&rows).Error; err != nil {
			log.Errorf("failed to fetch income for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// ExportIncomeHandler streams the monthly income rows as an .xlsx download.
func ExportIncomeHandler(db *gorm.DB, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := fetchIncome(db)
		if err != nil {
			log.Errorf("failed to fetch income for export: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Income")
		if err != nil {
			log.Errorf("failed to create income sheet: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headerRow := sheet.AddRow()
		headerRow.AddCell().SetValue("Month")
		headerRow.AddCell().SetValue("Total")

		for _, row := range rows {
			r := sheet.AddRow()
			r.AddCell().SetValue(time.Month(row.Month).String())
			r.AddCell().SetValue(row.Total)
		}

		c.Header("Content-Disposition", "attachment; filename=income.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			log.Errorf("failed to write income export: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

func fetchIncome(db *gorm.DB) ([]IncomeRow, error) {
	var rows []IncomeRow
	err := db.Raw(incomeQuery, incomeWindowStart(time.Now())).Scan(&rows).Error
	return rows, err
}
