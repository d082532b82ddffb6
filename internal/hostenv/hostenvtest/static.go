// Package hostenvtest provides a canned host environment for tests.
package hostenvtest

import (
	"context"
	"fmt"

	"hddwarn/internal/hostenv"
)

var _ hostenv.Env = (*Static)(nil)

// Static is a fixed hostenv.Env for tests.
type Static struct {
	Host    string
	Exe     string
	ExeErr  error
	Volumes []Volume
	ListErr error
}

// Volume is one entry of a Static environment.
type Volume struct {
	Mount string
	Free  uint64
	Err   error
}

func (s *Static) Hostname(context.Context) string {
	if s.Host == "" {
		return hostenv.UnknownHost
	}
	return s.Host
}

func (s *Static) Executable() (string, error) {
	return s.Exe, s.ExeErr
}

func (s *Static) Mounts(context.Context) ([]string, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := make([]string, 0, len(s.Volumes))
	for _, v := range s.Volumes {
		out = append(out, v.Mount)
	}
	return out, nil
}

func (s *Static) FreeBytes(_ context.Context, mount string) (uint64, error) {
	for _, v := range s.Volumes {
		if v.Mount == mount {
			return v.Free, v.Err
		}
	}
	return 0, fmt.Errorf("unknown mount %s", mount)
}
