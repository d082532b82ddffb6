package diskinfo

import (
	"context"
	"log/slog"
	"sort"

	"hddwarn/internal/format"
	"hddwarn/internal/hostenv"
	"hddwarn/internal/model"
)

// Capture reads free space for every mounted volume, in host enumeration
// order. Volumes whose usage cannot be read are skipped; an enumeration
// failure yields an empty result.
func Capture(ctx context.Context, env hostenv.Env) []model.VolumeReading {
	mounts, err := env.Mounts(ctx)
	if err != nil {
		slog.Warn("Volume enumeration failed", "err", err)
		return []model.VolumeReading{}
	}

	readings := make([]model.VolumeReading, 0, len(mounts))
	for _, m := range mounts {
		free, err := env.FreeBytes(ctx, m)
		if err != nil {
			slog.Warn("Skipping volume", "mount", m, "err", err)
			continue
		}
		slog.Debug("Volume read", "mount", m, "free", format.FormatBytes(free))
		readings = append(readings, model.VolumeReading{
			MountLabel:   m,
			FreeSpaceGiB: format.BytesToGiB(free),
		})
	}
	return readings
}

// SortByMount orders readings by mount label in place.
func SortByMount(readings []model.VolumeReading) {
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].MountLabel < readings[j].MountLabel
	})
}
