//go:build !windows

package hw

import (
	"context"
	"fmt"

	"github.com/jaypipes/ghw"
)

// ghwFirmware reads the SMBIOS data ghw exposes.
type ghwFirmware struct {
	opts []*ghw.WithOption
}

func newFirmwareSource(opts []*ghw.WithOption) FirmwareSource {
	return ghwFirmware{opts: opts}
}

func (f ghwFirmware) Board(ctx context.Context) (*Board, error) {
	bb, err := ghw.Baseboard(f.opts...)
	if err != nil {
		return nil, err
	}
	return &Board{Manufacturer: bb.Vendor, Product: bb.Product}, nil
}

func (f ghwFirmware) Firmware(ctx context.Context) (*Firmware, error) {
	p, err := ghw.Product(f.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to get product info: %w", err)
	}
	b, err := ghw.BIOS(f.opts...)
	if err != nil {
		return nil, err
	}

	return &Firmware{
		Manufacturer: p.Vendor,
		Model:        p.Name,
		Version:      b.Version,
		Date:         b.Date,
	}, nil
}
