package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swoop-build/swoop-backend/internal/accounts"
	"github.com/swoop-build/swoop-backend/internal/auth"
	"github.com/swoop-build/swoop-backend/internal/projects/domain"
)

// Handler serves account membership and account addresses.
type Handler struct {
	repo *accounts.Repo
	log  *logrus.Logger
}

func NewHandler(repo *accounts.Repo, log *logrus.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

func (h *Handler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, accounts.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, accounts.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	default:
		h.log.WithError(err).Error("account request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// ownAccount rejects requests targeting an account the caller is not a
// member of.
func ownAccount(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if id == "" || id != auth.UserAccountID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your account"})
		return "", false
	}
	return id, true
}

// Me returns the caller's account with members and addresses.
func (h *Handler) Me(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	account, err := h.repo.GetByFirebaseUID(c.Request.Context(), uid)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// CreateAccount opens an account for a freshly signed-up user.
func (h *Handler) CreateAccount(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		User  string `json:"user"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if body.Email == "" {
		body.Email = c.GetString("email")
	}
	account, err := h.repo.Create(c.Request.Context(), uid, body.Name, body.Email, body.User)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// AddUser invites a person onto the account.
func (h *Handler) AddUser(c *gin.Context) {
	accountID, ok := ownAccount(c)
	if !ok {
		return
	}
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	if body.Name == "" || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
		return
	}
	account, err := h.repo.AddUser(c.Request.Context(), accountID, body.Name, body.Email)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// RemoveUser drops a member from the account.
func (h *Handler) RemoveUser(c *gin.Context) {
	accountID, ok := ownAccount(c)
	if !ok {
		return
	}
	account, err := h.repo.RemoveUser(c.Request.Context(), accountID, c.Param("uid"))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

type addressRequest struct {
	Type    string `json:"type"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

func (in addressRequest) toAddress() (domain.Address, string) {
	t := domain.AddressType(in.Type)
	if !t.Valid() {
		return domain.Address{}, "unknown address type"
	}
	if strings.TrimSpace(in.Line1) == "" {
		return domain.Address{}, "line1 is required"
	}
	return domain.Address{
		Type:    t,
		Line1:   strings.TrimSpace(in.Line1),
		Line2:   strings.TrimSpace(in.Line2),
		City:    strings.TrimSpace(in.City),
		State:   strings.TrimSpace(in.State),
		Zip:     strings.TrimSpace(in.Zip),
		Country: strings.TrimSpace(in.Country),
	}, ""
}

// AddAddress attaches an address to the account and returns the list.
func (h *Handler) AddAddress(c *gin.Context) {
	accountID, ok := ownAccount(c)
	if !ok {
		return
	}
	var body addressRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	addr, msg := body.toAddress()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	addresses, err := h.repo.AddAddress(c.Request.Context(), accountID, addr)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, addresses)
}

// UpdateAddress replaces an account address and returns the list.
func (h *Handler) UpdateAddress(c *gin.Context) {
	accountID, ok := ownAccount(c)
	if !ok {
		return
	}
	var body addressRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	addr, msg := body.toAddress()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	addresses, err := h.repo.UpdateAddress(c.Request.Context(), accountID, c.Param("addressId"), addr)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

// DeleteAddress removes an account address and returns the list.
func (h *Handler) DeleteAddress(c *gin.Context) {
	accountID, ok := ownAccount(c)
	if !ok {
		return
	}
	addresses, err := h.repo.DeleteAddress(c.Request.Context(), accountID, c.Param("addressId"))
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}
