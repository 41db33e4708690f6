// utils/regions.go
package utils

import (
	"path/filepath"
	"strings"
)

// Regions are the tracked trending markets.
var Regions = []string{"US", "GB", "JP", "KR", "IN"}

// NormalizeRegionCode upper-cases a region code and returns "" for codes
// outside the tracked markets.
func NormalizeRegionCode(code string) string {
	upperCode := strings.ToUpper(strings.TrimSpace(code))
	for _, r := range Regions {
		if r == upperCode {
			return upperCode
		}
	}
	return ""
}

// RegionFromFilename finds a tracked region code among the "_", "-" or "."
// separated tokens of a snapshot filename, e.g. "2023-01-02_US.tsv" -> "US".
func RegionFromFilename(name string) string {
	base := filepath.Base(name)
	tokens := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	for _, tok := range tokens {
		if len(tok) != 2 {
			continue
		}
		if region := NormalizeRegionCode(tok); region != "" {
			return region
		}
	}
	return ""
}
