// Package respond writes the API's response shapes: successes wrapped
// in the {success, data} envelope, errors as a {message} body.
package respond

import "github.com/gin-gonic/gin"

func Data(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// Message is used by void mutations; it carries no data field so
// clients fall back to their bare-payload path.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
