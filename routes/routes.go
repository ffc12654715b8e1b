package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, log *logrus.Logger) {
	SetupOrderRoutes(r, db, log)
}
