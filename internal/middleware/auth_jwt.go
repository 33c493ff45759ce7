package middleware

import (
	"net/http"
	"strings"

	"storefront/internal/config"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxEmailKey = "email" // string
	CtxRolesKey = "roles" // []string

	// ブラウザのフォーム送信用。ヘッダが無ければこのcookieを見る
	AccessTokenCookie = "access_token"
)

// 外部のIdPが発行したJWTを検証し、emailとroleをcontextに入れる。
// 発行（ログイン）はこのサービスの外。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//JWTをパースして検証する
			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			email, _ := claims["email"].(string)
			email = strings.TrimSpace(email)
			if email == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxEmailKey, email)
			c.Set(CtxRolesKey, parseRoles(claims))

			return next(c)
		}
	}
}

// Authorization: Bearer を優先、無ければcookie
func bearerToken(c echo.Context) (string, bool) {
	authz := c.Request().Header.Get("Authorization")
	if authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		tok := strings.TrimSpace(parts[1])
		return tok, tok != ""
	}
	ck, err := c.Cookie(AccessTokenCookie)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

// "roles": ["customer", ...] か "role": "customer"
func parseRoles(claims jwt.MapClaims) []string {
	var roles []string
	switch v := claims["roles"].(type) {
	case []interface{}:
		for _, r := range v {
			if s, ok := r.(string); ok && s != "" {
				roles = append(roles, s)
			}
		}
	case string:
		if v != "" {
			roles = append(roles, v)
		}
	}
	if s, ok := claims["role"].(string); ok && s != "" {
		roles = append(roles, s)
	}
	return roles
}

// EmailFrom はAuthJWTが入れたemailを返す。
func EmailFrom(c echo.Context) (string, bool) {
	email, ok := c.Get(CtxEmailKey).(string)
	return email, ok && email != ""
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
