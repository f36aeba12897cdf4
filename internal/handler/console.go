package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/avc-dev/shortlinks/internal/model"
	"github.com/avc-dev/shortlinks/internal/usecase"
	"go.uber.org/zap"
)

// LinkUsecase определяет операции, доступные из консоли
type LinkUsecase interface {
	CreateShortLinkFromString(urlString string, userID string, maxClicks int64) (usecase.CreateResult, error)
	OpenLink(code string, userID string) (string, error)
	ListLinks(userID string) []model.LinkSummary
	Notifications(userID string) []model.Notification
}

// BrowserOpener открывает URL во внешнем браузере
type BrowserOpener interface {
	Open(url string) error
}

// Console интерактивная консоль реестра коротких ссылок.
// Ошибка выполнения команды печатается и не завершает цикл
type Console struct {
	usecase LinkUsecase
	browser BrowserOpener
	logger  *zap.Logger
	userID  string
	in      io.Reader
	out     io.Writer
}

// NewConsole создает новую консоль для пользователя userID
func NewConsole(uc LinkUsecase, browser BrowserOpener, logger *zap.Logger, userID string, in io.Reader, out io.Writer) *Console {
	return &Console{
		usecase: uc,
		browser: browser,
		logger:  logger,
		userID:  userID,
		in:      in,
		out:     out,
	}
}

// Run выполняет цикл чтения и обработки команд до команды exit,
// конца потока ввода или отмены контекста
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintf(c.out, "Ваш user UUID: %s\n", c.userID)
	c.printHelp()

	scanner := bufio.NewScanner(c.in)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fmt.Fprint(c.out, "\n> ")

		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd := strings.ToLower(fields[0])
		args := fields[1:]

		switch cmd {
		case "help":
			c.printHelp()
		case "create":
			c.handleCreate(args)
		case "list":
			c.handleList()
		case "open":
			c.handleOpen(args)
		case "notes":
			c.handleNotes()
		case "exit", "quit":
			fmt.Fprintln(c.out, "Bye.")
			return nil
		default:
			fmt.Fprintln(c.out, "Неизвестная команда. Напишите help.")
		}
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, "Команды:")
	fmt.Fprintln(c.out, "  create <longUrl> [maxClicks]  - создать короткую ссылку (maxClicks=0 => нет лимита)")
	fmt.Fprintln(c.out, "  list                          - показать ваши ссылки и статистику")
	fmt.Fprintln(c.out, "  open <code-or-full-url>       - открыть короткую ссылку (увеличивает счётчик)")
	fmt.Fprintln(c.out, "  notes                         - показать уведомления и очистить их")
	fmt.Fprintln(c.out, "  help                          - показать это сообщение")
	fmt.Fprintln(c.out, "  exit                          - выйти")
	fmt.Fprintln(c.out, "\nПример: create https://www.example.com 5")
}

func (c *Console) handleCreate(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: create <longUrl> [maxClicks]")
		return
	}

	longURL := args[0]

	var maxClicks int64
	if len(args) > 1 {
		// Некорректное значение лимита трактуется как "нет лимита"
		if parsed, err := strconv.ParseInt(args[1], 10, 64); err == nil {
			maxClicks = parsed
		}
	}

	result, err := c.usecase.CreateShortLinkFromString(longURL, c.userID, maxClicks)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyURL), errors.Is(err, usecase.ErrInvalidURL):
			fmt.Fprintln(c.out, "Некорректный URL.")
		default:
			fmt.Fprintf(c.out, "Ошибка: %v\n", err)
		}
		return
	}

	fmt.Fprintf(c.out, "Short code: %s\n", result.Code)
	fmt.Fprintf(c.out, "Short URL: %s\n", result.ShortURL)
}

func (c *Console) handleList() {
	summaries := c.usecase.ListLinks(c.userID)
	if len(summaries) == 0 {
		fmt.Fprintln(c.out, "У вас нет ссылок.")
		return
	}

	fmt.Fprintln(c.out, "Ваши ссылки:")
	for _, s := range summaries {
		limit := "∞"
		if s.MaxClicks > 0 {
			limit = strconv.FormatInt(s.MaxClicks, 10)
		}

		fmt.Fprintf(c.out, " code=%s  clicks=%d/%s  active=%t  url=%s  created=%s\n",
			s.Code,
			s.Clicks,
			limit,
			s.Active,
			s.LongURL,
			s.CreatedAt.Format(time.RFC3339),
		)
	}
}

func (c *Console) handleOpen(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: open <code-or-full-url>")
		return
	}

	arg := args[0]

	// Полный URL открывается напрямую, минуя реестр
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		c.openInBrowser(arg)
		return
	}

	longURL, err := c.usecase.OpenLink(arg, c.userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrLinkNotFound):
			fmt.Fprintln(c.out, "Код не найден.")
		case errors.Is(err, usecase.ErrLinkInactive):
			fmt.Fprintln(c.out, "Ссылка неактивна (исчерпан лимит или истёк TTL).")
		default:
			fmt.Fprintf(c.out, "Ошибка: %v\n", err)
		}
		return
	}

	fmt.Fprintf(c.out, "Открываю: %s (code=%s)\n", longURL, arg)
	c.openInBrowser(longURL)
}

func (c *Console) handleNotes() {
	notes := c.usecase.Notifications(c.userID)
	if len(notes) == 0 {
		fmt.Fprintln(c.out, "Уведомлений нет.")
		return
	}

	fmt.Fprintln(c.out, "Уведомления:")
	for _, note := range notes {
		fmt.Fprintf(c.out, "  %s - %s\n", note.CreatedAt.Format(time.RFC3339), note.Text)
	}
}

func (c *Console) openInBrowser(url string) {
	if err := c.browser.Open(url); err != nil {
		c.logger.Warn("failed to open browser", zap.String("url", url), zap.Error(err))
		fmt.Fprintf(c.out, "Не удалось открыть браузер. Откройте вручную: %s\n", url)
	}
}
