// Package report pairs each category title with its collector and
// resolves the fixed, ordered list of sections shown and exported.
package report

import (
	"context"
	"fmt"
	"log"

	"github.com/sysreport/sysreport/internal/hw"
	"golang.org/x/sync/errgroup"
)

// Section is one category title with its resolved content.
type Section struct {
	Icon    string
	Title   string
	Content string
	Status  hw.Status
}

// Label is the title with its icon glyph, when there is one.
func (s Section) Label() string {
	if s.Icon == "" {
		return s.Title
	}
	return s.Icon + " " + s.Title
}

// Entry is one row of the section table.
type Entry struct {
	Icon    string
	Title   string
	Collect func(ctx context.Context) hw.Result
}

// Catalog returns the section table in display order.
func Catalog(c *hw.Collector) []Entry {
	return []Entry{
		{Icon: "🧠", Title: "CPU", Collect: c.CPU},
		{Icon: "🎮", Title: "GPU", Collect: c.GPU},
		{Icon: "📦", Title: "RAM", Collect: c.RAM},
		{Icon: "🖥️", Title: "Placa Base", Collect: c.Motherboard},
		{Icon: "💾", Title: "Discos", Collect: c.Disks},
		{Icon: "🌐", Title: "Red", Collect: c.Network},
		{Icon: "🧬", Title: "BIOS", Collect: c.BIOS},
		{Icon: "🪪", Title: "Nombre y Usuario", Collect: c.Identity},
		{Icon: "⏱️", Title: "Uptime", Collect: c.Uptime},
	}
}

// Collect runs every entry once, concurrently, and returns the sections in
// table order after all of them finished. A collector that panics yields
// the placeholder. Failures are logged to logger when it is not nil.
func Collect(ctx context.Context, entries []Entry, logger *log.Logger) []Section {
	sections := make([]Section, len(entries))

	// Failures travel in hw.Result, so no goroutine returns an error and
	// Wait only joins them.
	var g errgroup.Group
	for i, e := range entries {
		g.Go(func() error {
			r := run(ctx, e)
			if r.Err != nil && logger != nil {
				logger.Printf("%s: %s: %v", e.Title, r.Status, r.Err)
			}
			sections[i] = Section{Icon: e.Icon, Title: e.Title, Content: r.Text, Status: r.Status}
			return nil
		})
	}
	g.Wait()

	return sections
}

func run(ctx context.Context, e Entry) (r hw.Result) {
	defer func() {
		if p := recover(); p != nil {
			r = hw.Unavailable(hw.NotDetected, fmt.Errorf("collector panicked: %v", p))
		}
	}()

	r = e.Collect(ctx)
	if r.Text == "" {
		r.Text = hw.NotDetected
		if r.Status == hw.StatusOK {
			r.Status = hw.StatusUnsupported
		}
	}
	return r
}
