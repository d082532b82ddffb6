package model

// VolumeReading is the free space of one mounted volume, in whole GiB.
type VolumeReading struct {
	MountLabel   string
	FreeSpaceGiB uint64
}

// Report is the rendered disk summary for one host.
type Report struct {
	HostName string
	Readings []VolumeReading
	Body     string
}

// Warnings returns the readings at or below the threshold.
func (r Report) Warnings(thresholdGiB uint64) []VolumeReading {
	var out []VolumeReading
	for _, v := range r.Readings {
		if v.FreeSpaceGiB <= thresholdGiB {
			out = append(out, v)
		}
	}
	return out
}
