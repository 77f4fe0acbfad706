package shared

import (
	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.S().With("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", code,
			"message", msg,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

// RespondErrorWithRedirect 返回错误响应并携带前端跳转目标。
// 用于下单前置校验失败这类预期错误：空购物车回购物车页、缺地址回地址页。
func RespondErrorWithRedirect(c *gin.Context, code int, msg, redirectTo string) {
	if redirectTo == "" {
		response.Error(c, code, msg)
		return
	}
	response.ErrorWithData(c, code, msg, gin.H{"redirect_to": redirectTo})
}
