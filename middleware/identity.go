package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"hotel-reservation/models"
	"hotel-reservation/utils"
)

const customerKey = "customer"

// Identity reads an optional Bearer token. A request without one continues
// as an anonymous customer; a bad token is rejected with 401. The token
// carries the user in "sub", and optionally "role" and "agency_id".
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.Set(customerKey, models.Customer{})
			c.Next()
			return
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "missing bearer token")
			return
		}
		customer, err := ParseToken(strings.TrimPrefix(auth, "Bearer "), secret)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "invalid token")
			return
		}
		c.Set(customerKey, customer)
		c.Next()
	}
}

// ParseToken validates an HMAC signed token and maps its claims.
func ParseToken(raw, secret string) (models.Customer, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.Customer{}, err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return models.Customer{}, errors.New("invalid claims")
	}

	var customer models.Customer
	userID, err := claimID(claims["sub"])
	if err != nil || userID == 0 {
		return models.Customer{}, errors.New("invalid subject")
	}
	customer.UserID = userID
	if role, ok := claims["role"].(string); ok {
		customer.Role = role
	}
	if v, ok := claims["agency_id"]; ok && v != nil {
		agencyID, err := claimID(v)
		if err != nil {
			return models.Customer{}, errors.New("invalid agency_id")
		}
		if agencyID != 0 {
			customer.AgencyID = &agencyID
		}
	}
	return customer, nil
}

// claimID accepts ids encoded as JSON numbers or strings.
func claimID(v any) (uint, error) {
	switch x := v.(type) {
	case float64:
		if x < 0 || x != float64(uint(x)) {
			return 0, fmt.Errorf("bad id %v", x)
		}
		return uint(x), nil
	case string:
		n, err := strconv.ParseUint(x, 10, 64)
		return uint(n), err
	default:
		return 0, fmt.Errorf("bad id type %T", v)
	}
}

// CurrentCustomer returns the caller set by Identity.
func CurrentCustomer(c *gin.Context) models.Customer {
	if v, ok := c.Get(customerKey); ok {
		if customer, ok := v.(models.Customer); ok {
			return customer
		}
	}
	return models.Customer{}
}

// RequireIdentity rejects anonymous callers.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentCustomer(c).IsAnonymous() {
			utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "sign in required")
			return
		}
		c.Next()
	}
}

// RequireRole lets through only callers with one of the roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		customer := CurrentCustomer(c)
		if customer.IsAnonymous() {
			utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "sign in required")
			return
		}
		if !allowed[customer.Role] {
			utils.JSONError(c, http.StatusForbidden, "error.forbidden", "forbidden")
			return
		}
		c.Next()
	}
}
