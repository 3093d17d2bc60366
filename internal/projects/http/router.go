package http

import "github.com/gin-gonic/gin"

// Register registers the project routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/projects", h.ListProjects)
	rg.POST("/projects", h.CreateProject)

	rg.GET("/project/:id", h.GetProject)
	rg.PUT("/project/:id", h.UpdateProject)
	rg.DELETE("/project/:id", h.DeleteProject)
	rg.POST("/project/copy/:id", h.CopyProject)

	rg.POST("/project/:id/specification", h.AddRoom)
	rg.POST("/project/:id/addspecification", h.ImportRooms)
	rg.PUT("/specification/:id", h.UpdateRoom)
	rg.DELETE("/specification/:id", h.DeleteRoom)
	rg.POST("/specification/:id/copy", h.CopyRoom)

	rg.POST("/specification/:id/item", h.AddItem)
	rg.PUT("/specificationitem/:id", h.UpdateItem)
	rg.DELETE("/specificationitem/:id", h.DeleteItem)

	rg.POST("/specificationcategory/:id/copy", h.CopyCategory)
	rg.DELETE("/specificationcategory/:id", h.DeleteCategory)

	rg.POST("/project/:id/address", h.AddAddress)
	rg.PUT("/project/:id/address/:addressId", h.UpdateAddress)
	rg.DELETE("/project/:id/address/:addressId", h.DeleteAddress)

	rg.POST("/project/:id/resend", h.ResendInvite)

	rg.POST("/project/:id/document", h.AddDocument)
	rg.DELETE("/project/:id/document/:docId", h.DeleteDocument)
}
