package admin

import (
	"errors"

	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadFile 管理端文件上传，scene 控制存储子目录
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "file required", err)
		return
	}

	scene := c.DefaultPostForm("scene", "common")
	path, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		if errors.Is(err, service.ErrUploadInvalid) {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
		respondError(c, response.CodeInternal, "upload failed", err)
		return
	}

	response.SuccessWithMsg(c, "file uploaded", gin.H{"url": path})
}
