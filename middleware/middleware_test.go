package middleware

import (
	"github.com/devfolio/portfolio-backend/logger"
	"github.com/gin-gonic/gin"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}
