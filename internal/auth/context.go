package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxAccountID   = "account_id"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context.
// Set by the auth middleware.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// UserAccountID extracts the resolved account id from the Gin context.
// Set by the account-resolution middleware after the auth middleware.
func UserAccountID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxAccountID))
}
