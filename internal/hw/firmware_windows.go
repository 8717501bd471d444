//go:build windows

package hw

import (
	"context"
	"errors"

	"github.com/jaypipes/ghw"
	"github.com/yusufpapurcu/wmi"
)

type win32BaseBoard struct {
	Manufacturer string
	Product      string
}

type win32ComputerSystem struct {
	Manufacturer string
	Model        string
}

type win32BIOS struct {
	SMBIOSBIOSVersion string
	ReleaseDate       string
}

// wmiFirmware queries WMI. Each wmi.Query opens and releases its own
// connection.
type wmiFirmware struct{}

func newFirmwareSource([]*ghw.WithOption) FirmwareSource {
	return wmiFirmware{}
}

func (wmiFirmware) Board(ctx context.Context) (*Board, error) {
	var boards []win32BaseBoard
	if err := wmi.Query("SELECT Manufacturer, Product FROM Win32_BaseBoard", &boards); err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return nil, errors.New("no Win32_BaseBoard instance")
	}
	return &Board{Manufacturer: boards[0].Manufacturer, Product: boards[0].Product}, nil
}

func (wmiFirmware) Firmware(ctx context.Context) (*Firmware, error) {
	var cs []win32ComputerSystem
	if err := wmi.Query("SELECT Manufacturer, Model FROM Win32_ComputerSystem", &cs); err != nil {
		return nil, err
	}
	var bios []win32BIOS
	if err := wmi.Query("SELECT SMBIOSBIOSVersion, ReleaseDate FROM Win32_BIOS", &bios); err != nil {
		return nil, err
	}
	if len(cs) == 0 || len(bios) == 0 {
		return nil, errors.New("no Win32_ComputerSystem or Win32_BIOS instance")
	}

	return &Firmware{
		Manufacturer: cs[0].Manufacturer,
		Model:        cs[0].Model,
		Version:      bios[0].SMBIOSBIOSVersion,
		Date:         bios[0].ReleaseDate,
	}, nil
}
