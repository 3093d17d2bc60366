package http

import "github.com/gin-gonic/gin"

// Register registers the account routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/accounts/me", h.Me)
	rg.POST("/account", h.CreateAccount)
	rg.POST("/account/:id/user/add", h.AddUser)
	rg.DELETE("/account/:id/user/:uid", h.RemoveUser)
	rg.POST("/account/:id/address", h.AddAddress)
	rg.PUT("/account/:id/address/:addressId", h.UpdateAddress)
	rg.DELETE("/account/:id/address/:addressId", h.DeleteAddress)
}
