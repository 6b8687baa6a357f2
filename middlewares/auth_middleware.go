package middlewares

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rakesh3649/Fitness/models"
	"github.com/rakesh3649/Fitness/policy"
	"github.com/rakesh3649/Fitness/repository"
	"github.com/rakesh3649/Fitness/responses"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const accountKey = "account"

// AccountFinder loads the account a token refers to.
type AccountFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
}

// Protect is the authentication gate. It verifies the bearer token, loads
// the account it names and stores it for the handlers.
func Protect(secret []byte, accounts AccountFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return responses.Fail(c, fiber.StatusUnauthorized, "Please login to access this resource")
		}

		claims, err := ParseToken(secret, tokenString)
		if err != nil {
			return responses.Fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		accountID, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			return responses.Fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
		defer cancel()

		account, err := accounts.FindByID(ctx, accountID)
		if errors.Is(err, repository.ErrNotFound) {
			return responses.Fail(c, fiber.StatusUnauthorized, "User no longer exists")
		} else if err != nil {
			return err
		}

		c.Locals(accountKey, account)
		return c.Next()
	}
}

// Authorize is the role gate: the account attached by Protect must hold
// one of roles.
func Authorize(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account := CurrentAccount(c)
		if account == nil {
			return responses.Fail(c, fiber.StatusUnauthorized, "User not authenticated")
		}
		for _, role := range roles {
			if account.Role == role {
				return c.Next()
			}
		}
		return responses.Fail(c, fiber.StatusForbidden,
			fmt.Sprintf("User role '%s' is not authorized to access this resource", account.Role))
	}
}

// Permit gates a route on a capability of the policy table.
func Permit(p *policy.Policy, capability policy.Capability) fiber.Handler {
	return Authorize(p.RolesFor(capability)...)
}

// CurrentAccount returns the account Protect attached, or nil.
func CurrentAccount(c *fiber.Ctx) *models.Account {
	account, _ := c.Locals(accountKey).(*models.Account)
	return account
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
