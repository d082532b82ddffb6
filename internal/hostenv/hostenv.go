// Package hostenv wraps the host queries the report relies on so they can be
// replaced in tests.
package hostenv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
)

// UnknownHost is reported when the hostname cannot be determined.
const UnknownHost = "Unknown"

// Env abstracts the host environment.
type Env interface {
	Hostname(ctx context.Context) string
	Executable() (string, error)
	Mounts(ctx context.Context) ([]string, error)
	FreeBytes(ctx context.Context, mount string) (uint64, error)
}

// System is the Env backed by the running OS.
type System struct{}

func (System) Hostname(ctx context.Context) string {
	if info, err := host.InfoWithContext(ctx); err == nil && strings.TrimSpace(info.Hostname) != "" {
		return info.Hostname
	}
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	return UnknownHost
}

func (System) Executable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

// Mounts lists mount points in the order the OS reports them.
func (System) Mounts(ctx context.Context) ([]string, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}
	seen := make(map[string]bool, len(parts))
	mounts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Mountpoint == "" || seen[p.Mountpoint] {
			continue
		}
		seen[p.Mountpoint] = true
		mounts = append(mounts, p.Mountpoint)
	}
	return mounts, nil
}

// FreeBytes returns the space available to unprivileged users on mount.
func (System) FreeBytes(ctx context.Context, mount string) (uint64, error) {
	u, err := disk.UsageWithContext(ctx, mount)
	if err != nil {
		return 0, fmt.Errorf("usage %s: %w", mount, err)
	}
	return u.Free, nil
}
