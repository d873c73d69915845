package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// LocalIdentity key de Fiber locals con la entity.Identity autenticada.
const LocalIdentity = "identity"

// authenticator es el contrato mínimo que necesita el middleware para resolver el token.
// Lo implementa *auth.AuthUseCase.
type authenticator interface {
	Authenticate(ctx context.Context, token string) (entity.Identity, error)
}

// AuthMiddleware valida el Bearer Token JWT, resuelve la cuenta y exige que esté activa.
// Cualquier fallo responde 401 con el mismo mensaje.
func AuthMiddleware(a authenticator) fiber.Handler {
	return authGate(a, true)
}

// AuthMiddlewareAnyStatus igual que AuthMiddleware pero admite cuentas desactivadas.
// Solo para DELETE /users/:id, que informa él mismo la baja repetida.
func AuthMiddlewareAnyStatus(a authenticator) fiber.Handler {
	return authGate(a, false)
}

func authGate(a authenticator, requireActive bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c)
		}
		id, err := a.Authenticate(c.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return unauthorized(c)
			}
			return err
		}
		if requireActive && !id.Status.IsActive() {
			return unauthorized(c)
		}
		c.Locals(LocalIdentity, id)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido o expirado"})
}

// GetIdentity devuelve la identidad del contexto (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) entity.Identity {
	id, _ := c.Locals(LocalIdentity).(entity.Identity)
	return id
}
