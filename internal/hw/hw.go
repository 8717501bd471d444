package hw

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jaypipes/ghw"
	"github.com/klauspost/cpuid/v2"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"
)

const (
	DefaultPublicIPURL     = "https://api.ipify.org"
	DefaultPublicIPTimeout = 3 * time.Second
)

const gib = 1024 * 1024 * 1024

// Options configures a Collector. Logger receives the warnings ghw emits
// while reading sysfs and SMBIOS; when nil they are dropped.
type Options struct {
	PublicIPURL     string
	PublicIPTimeout time.Duration
	Logger          *log.Logger
}

// Collector answers one query per category. The function fields point at
// the host by default and can be swapped in tests.
type Collector struct {
	Brand    func() string
	CPUInfo  func() (*ghw.CPUInfo, error)
	GPUInfo  func() (*ghw.GPUInfo, error)
	Memory   func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	Storage  DiskSource
	Firmware FirmwareSource

	Hostname        func() (string, error)
	Resolver        Resolver
	Interfaces      func(ctx context.Context) (psnet.InterfaceStatList, error)
	HTTP            HTTPDoer
	PublicIPURL     string
	PublicIPTimeout time.Duration

	HostInfo    func(ctx context.Context) (*host.InfoStat, error)
	CurrentUser func() (string, error)
	BootTime    func(ctx context.Context) (uint64, error)
	Now         func() time.Time
}

// NewCollector returns a Collector wired to the local host.
func NewCollector(opts Options) *Collector {
	if opts.PublicIPURL == "" {
		opts.PublicIPURL = DefaultPublicIPURL
	}
	if opts.PublicIPTimeout <= 0 {
		opts.PublicIPTimeout = DefaultPublicIPTimeout
	}
	ghwOpts := ghwOptions(opts.Logger)

	return &Collector{
		Brand:           func() string { return cpuid.CPU.BrandName },
		CPUInfo:         func() (*ghw.CPUInfo, error) { return ghw.CPU(ghwOpts...) },
		GPUInfo:         func() (*ghw.GPUInfo, error) { return ghw.GPU(ghwOpts...) },
		Memory:          mem.VirtualMemoryWithContext,
		Storage:         hostDisks{},
		Firmware:        newFirmwareSource(ghwOpts),
		Hostname:        hostname,
		Resolver:        net.DefaultResolver,
		Interfaces:      psnet.InterfacesWithContext,
		HTTP:            &http.Client{Timeout: opts.PublicIPTimeout},
		PublicIPURL:     opts.PublicIPURL,
		PublicIPTimeout: opts.PublicIPTimeout,
		HostInfo:        host.InfoWithContext,
		CurrentUser:     currentUser,
		BootTime:        host.BootTimeWithContext,
		Now:             time.Now,
	}
}

// ghwOptions routes ghw warnings to logger instead of stderr.
func ghwOptions(logger *log.Logger) []*ghw.WithOption {
	if logger == nil {
		return []*ghw.WithOption{ghw.WithNullAlerter()}
	}
	return []*ghw.WithOption{ghw.WithAlerter(logger)}
}

// CPU returns the processor brand string.
func (c *Collector) CPU(ctx context.Context) Result {
	if brand := strings.TrimSpace(c.Brand()); brand != "" {
		return OK(brand)
	}

	info, err := c.CPUInfo()
	if err != nil {
		return Unavailable(NotDetected, fmt.Errorf("failed to get CPU info: %w", err))
	}
	for _, p := range info.Processors {
		if model := strings.TrimSpace(p.Model); model != "" {
			return OK(model)
		}
	}
	return Unsupported(NotDetected)
}

// GPU returns one graphics card name per line, the product name or the
// vendor name when the product is unknown.
func (c *Collector) GPU(ctx context.Context) Result {
	info, err := c.GPUInfo()
	if err != nil {
		return Unavailable(NotDetected, fmt.Errorf("failed to get GPU info: %w", err))
	}

	var names []string
	for _, card := range info.GraphicsCards {
		if name := cardName(card); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return Unsupported(NotDetected)
	}
	return OK(strings.Join(names, "\n"))
}

func cardName(card *ghw.GraphicsCard) string {
	if card == nil || card.DeviceInfo == nil {
		return ""
	}

	if p := card.DeviceInfo.Product; p != nil && clean(p.Name) != "" {
		return strings.TrimSpace(p.Name)
	}
	if v := card.DeviceInfo.Vendor; v != nil && clean(v.Name) != "" {
		return strings.TrimSpace(v.Name)
	}
	return ""
}

// RAM returns total physical memory in GiB.
func (c *Collector) RAM(ctx context.Context) Result {
	vm, err := c.Memory(ctx)
	if err != nil {
		return Unavailable(NotDetected, fmt.Errorf("failed to get memory info: %w", err))
	}
	if vm.Total == 0 {
		return Unsupported(NotDetected)
	}
	return OK(FormatGiB(vm.Total))
}

// FormatGiB renders a byte count as gibibytes with two decimals.
func FormatGiB(bytes uint64) string {
	return fmt.Sprintf("%.2f GB", float64(bytes)/gib)
}
