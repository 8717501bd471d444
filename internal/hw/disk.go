package hw

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

type hostDisks struct{}

func (hostDisks) Partitions(ctx context.Context) ([]disk.PartitionStat, error) {
	return disk.PartitionsWithContext(ctx, false)
}

func (hostDisks) Usage(ctx context.Context, mountpoint string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, mountpoint)
}

// Disks returns usage for every mounted partition, one per line.
// Partitions whose usage cannot be read are left out.
func (c *Collector) Disks(ctx context.Context) Result {
	parts, err := c.Storage.Partitions(ctx)
	if err != nil {
		return Unavailable(NotDetected, fmt.Errorf("failed to list partitions: %w", err))
	}

	var lines []string
	var skipped int
	for _, p := range parts {
		u, err := c.Storage.Usage(ctx, p.Mountpoint)
		if err != nil || u == nil {
			skipped++
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %.2f GB usados de %.2f GB (%.1f%%)",
			p.Device, float64(u.Used)/gib, float64(u.Total)/gib, u.UsedPercent))
	}

	if len(lines) == 0 {
		if skipped > 0 {
			return Unavailable(NotDetected, fmt.Errorf("usage unreadable on all %d partitions", skipped))
		}
		return Unsupported(NotDetected)
	}
	return OK(strings.Join(lines, "\n"))
}
