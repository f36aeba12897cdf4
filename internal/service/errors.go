package service

import "errors"

var (
	// ErrLinkNotFound возвращается, когда код отсутствует в реестре
	ErrLinkNotFound = errors.New("link not found")
	// ErrLinkInactive возвращается, когда ссылка существует, но неактивна:
	// лимит переходов исчерпан или TTL истёк, но свипер её ещё не удалил
	ErrLinkInactive = errors.New("link is inactive")
)
