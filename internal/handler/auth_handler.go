package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Логин — заглушка: учетные данные не проверяются, всем отдается один и тот же
// токен, сгенерированный при старте процесса.
type AuthHandler struct {
	Token string
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}

// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"token":   h.Token,
		"message": "Вход выполнен успешно",
	})
}

// IssueToken подписывает JWT (HS512) один раз при старте. С пустым секретом
// возвращается фиксированная строка — поведение то же, токен никем не
// проверяется.
func IssueToken(secret string) string {
	if secret == "" {
		return "fake-jwt-token"
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub":   "admin",
		"roles": []string{"ADMIN"},
		"iat":   time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Printf("[IssueToken] не удалось подписать токен: %v", err)
		return "fake-jwt-token"
	}
	return signed
}
