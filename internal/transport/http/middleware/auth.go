package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kpione/internal/model"
	"kpione/internal/pkg/token"
	"kpione/internal/repository"
	"kpione/internal/transport/http/response"
)

const ContextUserKey = "current_user"

// Auth verifies the bearer token and resolves it to a full user record before
// the handler runs. Handlers behind it always see an existing user: a token
// whose username no longer resolves (deleted or renamed user) is rejected the
// same way as a bad token. Nothing is cached between requests; every request
// re-verifies and re-queries.
func Auth(tokens *token.Service, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			unauthorized(c, "invalid authorization scheme")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		username, err := tokens.Verify(tokenString)
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		user, err := users.GetByUsername(username)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "resolve user failed")
			c.Abort()
			return
		}
		if user == nil {
			unauthorized(c, "could not validate credentials")
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by Auth for this request.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, message)
	c.Abort()
}
