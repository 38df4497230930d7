package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qrcode-system/internal/pkg/logger"
)

// Recovery panic恢复中间件，崩溃记录日志并返回500
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Errorf("请求处理崩溃: %v", recovered)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code": 500,
			"msg":  "服务器内部错误",
		})
		c.Abort()
	})
}
