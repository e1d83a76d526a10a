package httpserver

import "github.com/gin-gonic/gin"

// apiResponse mirrors the backend's envelope so the SPA sees one response
// shape everywhere.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, apiResponse{Success: true, Data: data})
}

func respondErr(c *gin.Context, status int, message string) {
	c.JSON(status, apiResponse{Success: false, Message: message})
}

func respondErrData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, apiResponse{Success: false, Message: message, Data: data})
}
