package hw

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// maxIPBody bounds how much of the public IP response is read.
const maxIPBody = 256

func hostname() (string, error) {
	return os.Hostname()
}

// Network returns the local and public IP addresses. A failed public
// lookup only replaces the public line.
func (c *Collector) Network(ctx context.Context) Result {
	res := Result{Status: StatusOK}
	var errs []error

	local, err := c.localIP(ctx)
	if err != nil {
		local = NotAvailable
		errs = append(errs, err)
	}
	public, err := c.publicIP(ctx)
	if err != nil {
		public = NotAvailable
		errs = append(errs, err)
	}

	res.Text = fmt.Sprintf("IP Local: %s\nIP Pública: %s", local, public)
	if len(errs) > 0 {
		res.Status = StatusDegraded
		res.Err = errors.Join(errs...)
	}
	return res
}

// localIP resolves the host name and prefers a non-loopback IPv4 address.
// When resolution gives nothing better it falls back to the interface list.
func (c *Collector) localIP(ctx context.Context) (string, error) {
	name, err := c.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed to get hostname: %w", err)
	}

	var loopback string
	addrs, lookupErr := c.Resolver.LookupHost(ctx, name)
	for _, a := range addrs {
		ip := net.ParseIP(a)
		if ip == nil || ip.To4() == nil {
			continue
		}
		if !ip.IsLoopback() {
			return ip.String(), nil
		}
		if loopback == "" {
			loopback = ip.String()
		}
	}

	if c.Interfaces != nil {
		if ifaces, err := c.Interfaces(ctx); err == nil {
			if ip := firstInterfaceIPv4(ifaces); ip != "" {
				return ip, nil
			}
		}
	}

	if loopback != "" {
		return loopback, nil
	}
	if lookupErr != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", name, lookupErr)
	}
	return "", fmt.Errorf("no IPv4 address for %s", name)
}

func firstInterfaceIPv4(ifaces psnet.InterfaceStatList) string {
	for _, iface := range ifaces {
		if isLoopbackIface(iface.Flags) {
			continue
		}
		for _, a := range iface.Addrs {
			ip, _, err := net.ParseCIDR(a.Addr)
			if err != nil {
				ip = net.ParseIP(a.Addr)
			}
			if ip == nil || ip.To4() == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
				continue
			}
			return ip.String()
		}
	}
	return ""
}

func isLoopbackIface(flags []string) bool {
	for _, f := range flags {
		if f == "loopback" {
			return true
		}
	}
	return false
}

// publicIP issues one GET against the IP echo service, bounded by
// PublicIPTimeout. There is no retry.
func (c *Collector) publicIP(ctx context.Context) (string, error) {
	if c.PublicIPTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.PublicIPTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PublicIPURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build public IP request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("public IP lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("public IP lookup: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIPBody))
	if err != nil {
		return "", fmt.Errorf("public IP lookup: %w", err)
	}
	s := strings.TrimSpace(string(body))
	if net.ParseIP(s) == nil {
		return "", fmt.Errorf("public IP lookup: invalid address %q", s)
	}
	return s, nil
}
