package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"notely/internal/repository"
	"notely/internal/service"
)

const identityKey = "auth_identity"

// Identity es la identidad resuelta del request autenticado.
type Identity struct {
	UserID string
	Email  string
}

// AuthMiddleware valida el token de sesion y resuelve la identidad contra el
// store de usuarios antes de cualquier handler protegido.
func AuthMiddleware(tokenSvc *service.TokenService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenSvc == nil || users == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		claims, err := tokenSvc.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		// El token puede sobrevivir a la cuenta; se confirma que el usuario
		// siga existiendo antes de aceptar la credencial.
		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}

		c.Set(identityKey, Identity{UserID: user.ID, Email: user.Email})
		c.Next()
	}
}

// GetIdentity obtiene la identidad autenticada desde el contexto.
func GetIdentity(c *gin.Context) (Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := val.(Identity)
	return identity, ok
}
