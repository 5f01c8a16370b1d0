package handler

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueTokenWithoutSecret(t *testing.T) {
	if got := IssueToken(""); got != "fake-jwt-token" {
		t.Errorf("без секрета ожидали фиксированный токен, получили %q", got)
	}
}

func TestIssueTokenSignsHS512(t *testing.T) {
	secret := "test-secret"
	signed := IssueToken(secret)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("токен не прошел проверку: %v", err)
	}
	if token.Method.Alg() != "HS512" {
		t.Errorf("алгоритм %s, хотели HS512", token.Method.Alg())
	}
}

func TestIssueTokenIsStable(t *testing.T) {
	// Токен генерируется один раз при старте; хендлер всегда отдает его же.
	h := &AuthHandler{Token: IssueToken("s")}
	if h.Token == "" {
		t.Fatal("пустой токен")
	}
}
