package hw

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"runtime"
	"strings"
	"time"
)

func currentUser() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// Identity returns the host name, the current user and the architecture.
// Every line falls back to something local so the section is never empty.
func (c *Collector) Identity(ctx context.Context) Result {
	var name, arch string
	if info, err := c.HostInfo(ctx); err == nil && info != nil {
		name = info.Hostname
		arch = info.KernelArch
	}
	if name == "" {
		name, _ = c.Hostname()
	}
	if name == "" {
		name = NotDetected
	}
	if arch == "" {
		arch = runtime.GOARCH
	}

	login, err := c.CurrentUser()
	if err != nil || login == "" {
		login = envUser()
	}

	return OK(fmt.Sprintf("Equipo: %s\nUsuario: %s\nArquitectura: %s", name, login, arch))
}

func envUser() string {
	for _, k := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return NotDetected
}

// Uptime returns the time elapsed since boot.
func (c *Collector) Uptime(ctx context.Context) Result {
	boot, err := c.BootTime(ctx)
	if err != nil {
		return Unavailable(NotDetected, fmt.Errorf("failed to get boot time: %w", err))
	}
	if boot == 0 {
		return Unsupported(NotDetected)
	}

	elapsed := c.Now().Sub(time.Unix(int64(boot), 0))
	return OK("Encendido: " + FormatUptime(elapsed))
}

// FormatUptime renders d as days, hours and minutes. Negative durations
// render as zero.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}
