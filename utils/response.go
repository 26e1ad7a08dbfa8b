package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONError writes the structured error body used by every endpoint.
func JSONError(c *gin.Context, code int, errCode, message string) {
	c.AbortWithStatusJSON(code, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errCode,
			"message": message,
		},
	})
}

// JSONFieldErrors is JSONError with per-field messages attached.
func JSONFieldErrors(c *gin.Context, code int, errCode, message string, fields map[string][]string) {
	c.AbortWithStatusJSON(code, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errCode,
			"message": message,
			"fields":  fields,
		},
	})
}
