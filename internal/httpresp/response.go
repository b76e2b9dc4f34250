package httpresp

import "github.com/gin-gonic/gin"

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}
