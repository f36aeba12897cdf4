package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// SystemOpener открывает URL в браузере по умолчанию системной командой
type SystemOpener struct{}

// NewSystemOpener создает новый SystemOpener
func NewSystemOpener() *SystemOpener {
	return &SystemOpener{}
}

// Open запускает браузер с указанным URL, не дожидаясь его завершения
func (o *SystemOpener) Open(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
