package usecase

import (
	"time"

	"github.com/avc-dev/shortlinks/internal/config"
	"github.com/avc-dev/shortlinks/internal/model"
	"go.uber.org/zap"
)

// LinkService определяет интерфейс сервиса реестра коротких ссылок
type LinkService interface {
	CreateLink(longURL model.URL, ownerID string, maxClicks int64, ttl time.Duration) (*model.Link, bool, error)
	OpenLink(code model.Code, requesterID string) (model.URL, error)
	ListLinks(ownerID string) []model.LinkSummary
	Notifications(ownerID string) []model.Notification
}

// LinkUsecase содержит бизнес-логику консольных команд
type LinkUsecase struct {
	service LinkService
	cfg     *config.Config
	logger  *zap.Logger
}

// NewLinkUsecase создает новый экземпляр LinkUsecase
func NewLinkUsecase(service LinkService, cfg *config.Config, logger *zap.Logger) *LinkUsecase {
	return &LinkUsecase{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}
