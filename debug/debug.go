package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Classify bool
	Check    bool
	Narrow   bool
	Analyze  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Classify = boolEnv("DOCSHAPE_DEBUG_CLASSIFY")
	d.Check = boolEnv("DOCSHAPE_DEBUG_CHECK")
	d.Narrow = boolEnv("DOCSHAPE_DEBUG_NARROW")
	d.Analyze = boolEnv("DOCSHAPE_DEBUG_ANALYZE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Classify() bool {
	return d.Classify
}
func Check() bool {
	return d.Check
}
func Narrow() bool {
	return d.Narrow
}
func Analyze() bool {
	return d.Analyze
}
