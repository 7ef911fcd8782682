package mosaic

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRatio accepts a decimal ("0.5") or a fraction ("1/2").
func ParseRatio(ratio string) (float64, error) {
	ratio = strings.TrimSpace(ratio)
	if num, err := strconv.ParseFloat(ratio, 64); err == nil {
		return num, nil
	}

	f := strings.Split(ratio, "/")
	if len(f) == 2 {
		num, err := strconv.ParseFloat(strings.TrimSpace(f[0]), 64)
		if err != nil {
			return 0, err
		}

		den, err := strconv.ParseFloat(strings.TrimSpace(f[1]), 64)
		if err != nil {
			return 0, err
		}
		if den == 0 {
			return 0, fmt.Errorf("%s: division by zero", ratio)
		}

		return num / den, nil
	}

	return 0, fmt.Errorf("%s: invalid ratio", ratio)
}

// ParseLayoutManualWindow converts four ratio strings into a manual slot.
func ParseLayoutManualWindow(x, y, w, h string) (LayoutManualWindow, error) {
	fx, err := ParseRatio(x)
	if err != nil {
		return LayoutManualWindow{}, fmt.Errorf("X=%w", err)
	}

	fy, err := ParseRatio(y)
	if err != nil {
		return LayoutManualWindow{}, fmt.Errorf("Y=%w", err)
	}

	fw, err := ParseRatio(w)
	if err != nil {
		return LayoutManualWindow{}, fmt.Errorf("W=%w", err)
	}

	fh, err := ParseRatio(h)
	if err != nil {
		return LayoutManualWindow{}, fmt.Errorf("H=%w", err)
	}

	return LayoutManualWindow{
		X: fx,
		Y: fy,
		W: fw,
		H: fh,
	}, nil
}
