package public

import (
	"strings"

	"github.com/prostore-go/internal/constants"
	handlershared "github.com/prostore-go/internal/http/handlers/shared"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

// currentIdentity 组装请求主体。
// 已登录时以 user_id 为准，匿名请求回退到购物车会话头。
func currentIdentity(c *gin.Context) service.Identity {
	id := service.Identity{
		SessionCartID: strings.TrimSpace(c.GetHeader(constants.SessionCartHeader)),
	}
	if raw, exists := c.Get("user_id"); exists {
		switch v := raw.(type) {
		case uint:
			id.UserID = v
		case int:
			if v > 0 {
				id.UserID = uint(v)
			}
		case float64:
			if v > 0 {
				id.UserID = uint(v)
			}
		}
	}
	return id
}
