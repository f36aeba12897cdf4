package service

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthService управляет постоянной идентичностью пользователя: uuid,
// обёрнутый в подписанный JWT и сохранённый в файле токена. Реестр
// использует идентичность как непрозрачную строку без валидации
type AuthService struct {
	jwtSecret []byte
	tokenPath string
}

// NewAuthService создает новый экземпляр AuthService
func NewAuthService(jwtSecret string, tokenPath string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(jwtSecret),
		tokenPath: tokenPath,
	}
}

// GenerateUserID генерирует уникальный идентификатор пользователя
func (a *AuthService) GenerateUserID() string {
	return uuid.New().String()
}

// GenerateJWT создает JWT токен для пользователя.
// Токен идентичности не ограничен по времени: он должен переживать
// перезапуски процесса
func (a *AuthService) GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateJWT проверяет JWT токен и извлекает user_id
func (a *AuthService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if userID, ok := claims["user_id"].(string); ok {
			return userID, nil
		}
		return "", fmt.Errorf("user_id not found in token")
	}

	return "", fmt.Errorf("invalid token")
}

// LoadOrCreateIdentity читает идентичность из файла токена или создает
// нового пользователя и записывает токен. Нечитаемый или недействительный
// токен заменяется новым. Если идентичность создана, но записать файл не
// удалось, возвращается новая идентичность вместе с ошибкой записи:
// работать можно, но идентичность не переживёт перезапуск
func (a *AuthService) LoadOrCreateIdentity() (string, error) {
	data, err := os.ReadFile(a.tokenPath)
	if err == nil {
		if userID, vErr := a.ValidateJWT(strings.TrimSpace(string(data))); vErr == nil {
			return userID, nil
		}
	}

	userID := a.GenerateUserID()

	token, err := a.GenerateJWT(userID)
	if err != nil {
		return userID, fmt.Errorf("failed to generate identity token: %w", err)
	}

	if err := os.WriteFile(a.tokenPath, []byte(token), 0o600); err != nil {
		return userID, fmt.Errorf("failed to persist identity token: %w", err)
	}

	return userID, nil
}
