package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"hotel-reservation/models"
)

const testSecret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return raw
}

func TestParseToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()

	c, err := ParseToken(sign(t, jwt.MapClaims{"sub": 12, "role": "operator", "exp": exp}, testSecret), testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UserID != 12 || !c.IsOperator() || c.AgencyID != nil {
		t.Fatalf("unexpected customer %+v", c)
	}

	c, err = ParseToken(sign(t, jwt.MapClaims{"sub": "34", "agency_id": 7, "exp": exp}, testSecret), testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UserID != 34 || c.AgencyID == nil || *c.AgencyID != 7 {
		t.Fatalf("unexpected customer %+v", c)
	}

	bad := []struct {
		name string
		raw  string
	}{
		{"wrong secret", sign(t, jwt.MapClaims{"sub": 1, "exp": exp}, "other")},
		{"expired", sign(t, jwt.MapClaims{"sub": 1, "exp": time.Now().Add(-time.Minute).Unix()}, testSecret)},
		{"no subject", sign(t, jwt.MapClaims{"exp": exp}, testSecret)},
		{"negative subject", sign(t, jwt.MapClaims{"sub": -3, "exp": exp}, testSecret)},
		{"garbage", "not-a-token"},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseToken(tc.raw, testSecret); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity(testSecret))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, CurrentCustomer(c))
	})
	r.GET("/mine", RequireIdentity(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/desk", RequireRole(models.RoleOperator), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestIdentityMiddleware(t *testing.T) {
	r := newTestRouter()
	exp := time.Now().Add(time.Hour).Unix()
	guestToken := "Bearer " + sign(t, jwt.MapClaims{"sub": 5, "exp": exp}, testSecret)
	operatorToken := "Bearer " + sign(t, jwt.MapClaims{"sub": 6, "role": models.RoleOperator, "exp": exp}, testSecret)

	cases := []struct {
		name string
		path string
		auth string
		want int
	}{
		{"anonymous public", "/whoami", "", http.StatusOK},
		{"malformed header", "/whoami", "Token abc", http.StatusUnauthorized},
		{"invalid token", "/whoami", "Bearer abc", http.StatusUnauthorized},
		{"anonymous private", "/mine", "", http.StatusUnauthorized},
		{"signed in private", "/mine", guestToken, http.StatusNoContent},
		{"guest at desk", "/desk", guestToken, http.StatusForbidden},
		{"anonymous at desk", "/desk", "", http.StatusUnauthorized},
		{"operator at desk", "/desk", operatorToken, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}
