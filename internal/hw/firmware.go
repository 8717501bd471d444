package hw

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// smbiosDate matches the MM/DD/YYYY form the SMBIOS tables use.
var smbiosDate = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// Motherboard returns the board manufacturer and product name.
func (c *Collector) Motherboard(ctx context.Context) Result {
	b, err := c.Firmware.Board(ctx)
	if err != nil {
		return Unavailable(NotDetected, fmt.Errorf("failed to get baseboard info: %w", err))
	}
	text := strings.TrimSpace(clean(b.Manufacturer) + " " + clean(b.Product))
	if text == "" {
		return Unsupported(NotDetected)
	}
	return OK(text)
}

// BIOS returns manufacturer, model, BIOS version and BIOS date. Any
// failure, or firmware that reports only filler values, collapses the
// whole section to one placeholder.
func (c *Collector) BIOS(ctx context.Context) Result {
	f, err := c.Firmware.Firmware(ctx)
	if err != nil {
		return Unavailable(NotDetected, fmt.Errorf("failed to get BIOS info: %w", err))
	}

	manufacturer, model, version, date := clean(f.Manufacturer), clean(f.Model), clean(f.Version), BIOSDate(f.Date)
	if manufacturer == "" && model == "" && version == "" && date == "" {
		return Unsupported(NotDetected)
	}
	return OK(fmt.Sprintf("Fabricante: %s\nModelo: %s\nVersión BIOS: %s\nFecha BIOS: %s",
		manufacturer, model, version, date))
}

// BIOSDate keeps the first eight characters of a raw date, which is the
// YYYYMMDD part of a CIM datetime. SMBIOS dates are rewritten to the same
// form first.
func BIOSDate(raw string) string {
	raw = clean(raw)
	if m := smbiosDate.FindStringSubmatch(raw); m != nil {
		raw = m[3] + m[1] + m[2]
	}
	if len(raw) > 8 {
		raw = raw[:8]
	}
	return raw
}

// clean drops the filler values firmware vendors leave in empty fields.
func clean(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "unknown", "to be filled by o.e.m.", "default string", "not applicable", "none":
		return ""
	}
	return s
}
