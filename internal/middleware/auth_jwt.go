package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	// 解決済みユーザー（*model.User）
	CtxUserKey = "user"
)

const bearerPrefix = "Bearer "

// ヘッダ形式エラーとトークン検証エラーは別物として返す
const (
	MsgMalformedCredential = "authorization token must start with Bearer"
	MsgInvalidCredential   = "invalid or expired token"
)

// OptionalAuthはAuthorizationヘッダからユーザーを解決するミドルウェア。
//   - ヘッダ無し → 匿名のまま通す（拒否は各ハンドラ側のRequireUserが行う）
//   - Bearer形式でない → 401（MalformedCredential）
//   - 署名・期限の検証失敗 → 401（InvalidCredential）
//   - 検証は通ったがid claimが無い／該当ユーザーが居ない → 匿名のまま通す
func OptionalAuth(cfg config.Config, userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return next(c)
			}

			if !strings.HasPrefix(authz, bearerPrefix) {
				return c.JSON(http.StatusUnauthorized, errorJSON(MsgMalformedCredential))
			}

			rawToken := strings.TrimSpace(authz[len(bearerPrefix):])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON(MsgMalformedCredential))
			}

			//JWTをパースして検証する
			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || token == nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON(MsgInvalidCredential))
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON(MsgInvalidCredential))
			}

			//id claimが無いトークンは「検証成功・身元なし」扱いで匿名続行
			userID, err := parseUserID(claims["id"])
			if err != nil || userID <= 0 {
				return next(c)
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			//該当ユーザーが見つからない場合も匿名続行
			if user == nil {
				return next(c)
			}

			//contextへ保存
			c.Set(CtxUserKey, user)

			return next(c)
		}
	}
}

// RequireUserは解決済みユーザーが居なければ401で止めるゲート。
// OptionalAuthの後段に置く。
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := c.Get(CtxUserKey).(*model.User)
			if !ok || u == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("you must be logged in to perform this action"))
			}
			return next(c)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// id claimをint64に変換する
func parseUserID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid id")
	}
}
