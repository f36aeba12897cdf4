package service

import (
	"crypto/rand"

	"github.com/avc-dev/shortlinks/internal/model"
)

const (
	// DefaultCodeLength длина короткого кода по умолчанию
	DefaultCodeLength = 6
	// AllowedChars алфавит коротких кодов
	AllowedChars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// maxRandomByte граница отбрасывания байтов для равномерного распределения
// символов алфавита
const maxRandomByte = byte(len(AllowedChars) * (256 / len(AllowedChars)))

// CodeGenerator генерирует случайные коды фиксированной длины из
// криптографически стойкого источника. Уникальность кодов генератор не
// гарантирует, коллизии разрешает реестр повторной генерацией
type CodeGenerator struct {
	length int
}

// NewCodeGenerator создает новый генератор кодов
func NewCodeGenerator(length int) *CodeGenerator {
	if length <= 0 {
		length = DefaultCodeLength
	}

	return &CodeGenerator{
		length: length,
	}
}

// GenerateCode генерирует случайный код
func (g *CodeGenerator) GenerateCode() model.Code {
	return model.Code(g.generateRandomString())
}

// generateRandomString генерирует случайную строку заданной длины
func (g *CodeGenerator) generateRandomString() string {
	result := make([]byte, 0, g.length)
	buf := make([]byte, g.length)

	for len(result) < g.length {
		// crypto/rand.Read не возвращает ошибку на поддерживаемых платформах
		_, _ = rand.Read(buf)

		for _, b := range buf {
			// Отбрасываем старшие байты, иначе распределение неравномерно
			if b >= maxRandomByte {
				continue
			}

			result = append(result, AllowedChars[int(b)%len(AllowedChars)])
			if len(result) == g.length {
				break
			}
		}
	}

	return string(result)
}
