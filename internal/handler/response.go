package handler

import "github.com/gin-gonic/gin"

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respondSuccess(c *gin.Context, code int, message string, data gin.H) {
	resp := Response{Status: "success", Message: message}
	if data != nil {
		resp.Data = data
	}
	c.JSON(code, resp)
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, Response{Status: "error", Message: message})
}
