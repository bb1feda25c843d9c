package scan

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Recognized line keys.
const (
	KeyDistance  = "distance"
	KeyYaw       = "yaw"
	KeyDirection = "direction"
	KeyObject    = "object"
	KeyGyro      = "gyro"
)

// ParseLine splits a "k1=v1,k2=v2" line into lower-cased keys and trimmed
// values. Segments without '=' are skipped; later duplicates win.
func ParseLine(line string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(line, ",") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return out
}

// DecodeSample converts the recognized keys of a parsed line into a Sample.
// Malformed numeric fields are left nil and reported in the returned error,
// which joins one *FieldError per dropped field. The Sample is always usable.
func DecodeSample(fields map[string]string) (Sample, error) {
	var (
		s    Sample
		errs []error
	)

	if v, ok := fields[KeyDistance]; ok {
		if f, err := parseFinite(v); err != nil {
			errs = append(errs, &FieldError{Key: KeyDistance, Value: v, Err: err})
		} else {
			s.Distance = &f
		}
	}
	if v, ok := fields[KeyYaw]; ok {
		if f, err := parseFinite(v); err != nil {
			errs = append(errs, &FieldError{Key: KeyYaw, Value: v, Err: err})
		} else {
			s.Yaw = &f
		}
	}
	if v, ok := fields[KeyDirection]; ok {
		s.Direction = &v
	}
	if v, ok := fields[KeyObject]; ok {
		s.Object = &v
	}
	if v, ok := fields[KeyGyro]; ok {
		s.Gyro = &v
	}

	return s, errors.Join(errs...)
}

func parseFinite(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a finite number")
	}
	return f, nil
}
