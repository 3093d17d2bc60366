package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swoop-build/swoop-backend/internal/auth"
	"github.com/swoop-build/swoop-backend/internal/projects/domain"
	"github.com/swoop-build/swoop-backend/internal/projects/service"
)

// Handler serves the project aggregate. Every mutating endpoint responds
// with the complete recomputed project so clients can replace their copy
// verbatim.
type Handler struct {
	svc *service.ProjectService
	log *logrus.Logger
}

func NewHandler(svc *service.ProjectService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// accountID resolves the caller's account from the auth middleware, with
// a header fallback for development.
func accountID(c *gin.Context) string {
	if id := auth.UserAccountID(c); id != "" {
		return id
	}
	return c.GetHeader("X-Account-Id")
}

// respondErr maps domain errors onto HTTP statuses.
func (h *Handler) respondErr(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	default:
		h.log.WithError(err).Error("project request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// respondProject is the shared success path for mutations.
func (h *Handler) respondProject(c *gin.Context, status int, p *domain.Project, err error) {
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(status, p)
}

// ListProjects returns the account's project headers.
func (h *Handler) ListProjects(c *gin.Context) {
	acct := accountID(c)
	if acct == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account not resolved"})
		return
	}
	projects, err := h.svc.List(c.Request.Context(), acct)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// CreateProject creates a project with its initial collaborators and
// addresses.
func (h *Handler) CreateProject(c *gin.Context) {
	acct := accountID(c)
	if acct == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account not resolved"})
		return
	}
	var in service.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.svc.Create(c.Request.Context(), acct, in)
	h.respondProject(c, http.StatusCreated, p, err)
}

// GetProject returns the full project snapshot.
func (h *Handler) GetProject(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), accountID(c), c.Param("id"))
	h.respondProject(c, http.StatusOK, p, err)
}

// UpdateProject applies a piecemeal edit.
func (h *Handler) UpdateProject(c *gin.Context) {
	var in service.ProjectUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.svc.Update(c.Request.Context(), accountID(c), c.Param("id"), in)
	h.respondProject(c, http.StatusOK, p, err)
}

// DeleteProject removes a project.
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), accountID(c), c.Param("id")); err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// CopyProject duplicates a project wholesale and returns the copy.
func (h *Handler) CopyProject(c *gin.Context) {
	p, err := h.svc.Copy(c.Request.Context(), accountID(c), c.Param("id"))
	h.respondProject(c, http.StatusCreated, p, err)
}

// AddRoom adds a room specification to the project.
func (h *Handler) AddRoom(c *gin.Context) {
	var body roomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.svc.AddRoom(c.Request.Context(), accountID(c), c.Param("id"), body.Room, body.Date)
	h.respondProject(c, http.StatusCreated, p, err)
}

// ImportRooms copies every room specification from another project.
func (h *Handler) ImportRooms(c *gin.Context) {
	var body importRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.svc.ImportRooms(c.Request.Context(), accountID(c), c.Param("id"), body.SourceProjectID, body.Depth)
	h.respondProject(c, http.StatusOK, p, err)
}

// UpdateRoom edits a room specification.
func (h *Handler) UpdateRoom(c *gin.Context) {
	var body roomRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.svc.UpdateRoom(c.Request.Context(), accountID(c), c.Param("id"), body.Room, body.Date)
	h.respondProject(c, http.StatusOK, p, err)
}

// DeleteRoom removes a room specification and everything under it.
func (h *Handler) DeleteRoom(c *gin.Context) {
	p, err := h.svc.DeleteRoom(c.Request.Context(), accountID(c), c.Param("id"))
	h.respondProject(c, http.StatusOK, p, err)
}

// CopyRoom duplicates a room specification into another room.
func (h *Handler) CopyRoom(c *gin.Context) {
	var body copySpecRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if body.Depth == "" {
		body.Depth = string(domain.CopyFull)
	}
	p, err := h.svc.CopySpecification(c.Request.Context(), accountID(c), c.Param("id"), body.Room, body.Depth)
	h.respondProject(c, http.StatusCreated, p, err)
}

// AddItem adds an item under a room specification, creating the category
// on first use.
func (h *Handler) AddItem(c *gin.Context) {
	var in service.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.svc.AddItem(c.Request.Context(), accountID(c), c.Param("id"), in)
	h.respondProject(c, http.StatusCreated, p, err)
}

// UpdateItem fully replaces an item's editable fields.
func (h *Handler) UpdateItem(c *gin.Context) {
	var in service.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.svc.UpdateItem(c.Request.Context(), accountID(c), c.Param("id"), in)
	h.respondProject(c, http.StatusOK, p, err)
}

// DeleteItem removes an item.
func (h *Handler) DeleteItem(c *gin.Context) {
	p, err := h.svc.DeleteItem(c.Request.Context(), accountID(c), c.Param("id"))
	h.respondProject(c, http.StatusOK, p, err)
}

// CopyCategory deep-copies a category into a new type within its room.
func (h *Handler) CopyCategory(c *gin.Context) {
	var body copyCategoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.svc.CopyCategory(c.Request.Context(), accountID(c), c.Param("id"), body.Type)
	h.respondProject(c, http.StatusCreated, p, err)
}

// DeleteCategory removes a category and its items.
func (h *Handler) DeleteCategory(c *gin.Context) {
	p, err := h.svc.DeleteCategory(c.Request.Context(), accountID(c), c.Param("id"))
	h.respondProject(c, http.StatusOK, p, err)
}

// AddAddress attaches an address to the project.
func (h *Handler) AddAddress(c *gin.Context) {
	var in service.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.svc.AddAddress(c.Request.Context(), accountID(c), c.Param("id"), in)
	h.respondProject(c, http.StatusCreated, p, err)
}

// UpdateAddress edits a project address.
func (h *Handler) UpdateAddress(c *gin.Context) {
	var in service.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.svc.UpdateAddress(c.Request.Context(), accountID(c), c.Param("id"), c.Param("addressId"), in)
	h.respondProject(c, http.StatusOK, p, err)
}

// DeleteAddress removes a project address.
func (h *Handler) DeleteAddress(c *gin.Context) {
	p, err := h.svc.DeleteAddress(c.Request.Context(), accountID(c), c.Param("id"), c.Param("addressId"))
	h.respondProject(c, http.StatusOK, p, err)
}

// ResendInvite re-sends a collaborator invite and stamps it reminded.
func (h *Handler) ResendInvite(c *gin.Context) {
	var body resendRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.CollaboratorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "collaborator_id is required"})
		return
	}
	p, err := h.svc.ResendInvite(c.Request.Context(), accountID(c), c.Param("id"), body.CollaboratorID)
	h.respondProject(c, http.StatusOK, p, err)
}

// AddDocument registers an already-uploaded file against the project.
func (h *Handler) AddDocument(c *gin.Context) {
	var in service.DocumentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.svc.AddDocument(c.Request.Context(), accountID(c), c.Param("id"), in)
	h.respondProject(c, http.StatusCreated, p, err)
}

// DeleteDocument removes a document record.
func (h *Handler) DeleteDocument(c *gin.Context) {
	p, err := h.svc.DeleteDocument(c.Request.Context(), accountID(c), c.Param("id"), c.Param("docId"))
	h.respondProject(c, http.StatusOK, p, err)
}
