package hw

import (
	"context"
	"net/http"

	"github.com/shirou/gopsutil/v3/disk"
)

// Placeholders shown when a category cannot be read.
const (
	NotDetected  = "No detectado"
	NotAvailable = "No disponible"
)

// Status tells why a Result carries the text it does.
type Status int

const (
	// StatusOK means every line holds real data.
	StatusOK Status = iota
	// StatusDegraded means some lines hold a placeholder.
	StatusDegraded
	// StatusUnavailable means the query failed and Text is a placeholder.
	StatusUnavailable
	// StatusUnsupported means the host has no way to answer the query.
	StatusUnsupported
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	case StatusUnavailable:
		return "unavailable"
	case StatusUnsupported:
		return "unsupported"
	}
	return "unknown"
}

// Result is the formatted content of one category.
type Result struct {
	Text   string
	Status Status
	Err    error
}

// OK wraps successfully collected text.
func OK(text string) Result {
	return Result{Text: text, Status: StatusOK}
}

// Unavailable returns placeholder text for a failed query.
func Unavailable(placeholder string, err error) Result {
	return Result{Text: placeholder, Status: StatusUnavailable, Err: err}
}

// Unsupported returns placeholder text for a query the host cannot answer.
func Unsupported(placeholder string) Result {
	return Result{Text: placeholder, Status: StatusUnsupported}
}

// DiskSource lists mounted partitions and reads their usage.
type DiskSource interface {
	Partitions(ctx context.Context) ([]disk.PartitionStat, error)
	Usage(ctx context.Context, mountpoint string) (*disk.UsageStat, error)
}

// Resolver resolves a host name to its addresses.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// HTTPDoer performs a single HTTP request.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Board is the motherboard identity.
type Board struct {
	Manufacturer string
	Product      string
}

// Firmware is the system and BIOS identity. Date is the raw string reported
// by the host.
type Firmware struct {
	Manufacturer string
	Model        string
	Version      string
	Date         string
}

// FirmwareSource queries motherboard and BIOS facts from the host's
// management interface.
type FirmwareSource interface {
	Board(ctx context.Context) (*Board, error)
	Firmware(ctx context.Context) (*Firmware, error)
}
