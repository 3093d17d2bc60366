package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swoop-build/swoop-backend/internal/auth"
)

// AccountResolver maps an authenticated user to their account.
type AccountResolver interface {
	AccountIDForUser(ctx context.Context, firebaseUID string) (string, error)
}

// WithAccount resolves the caller's account from their firebase uid and
// stores it in context. Runs after the auth middleware; callers without
// an account yet pass through with no account id set, so the only routes
// that work for them are account bootstrap ones.
func WithAccount(resolver AccountResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := auth.UserFirebaseUID(c)
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		accountID, err := resolver.AccountIDForUser(c.Request.Context(), uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "account lookup failed"})
			c.Abort()
			return
		}
		if accountID != "" {
			c.Set(auth.CtxAccountID, accountID)
		}
		c.Next()
	}
}
