package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookreview/pkg/response"
)

// parseIDParam 解析路径中的数字ID
// 非数字（如/books/abc）返回400，与"存在性校验返回404"区分开
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.ValidationError(c, "无效的ID: "+raw, nil)
		return 0, false
	}

	return uint(id), true
}
