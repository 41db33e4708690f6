package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRegionCode(t *testing.T) {
	assert.Equal(t, "US", NormalizeRegionCode(" us "))
	assert.Equal(t, "KR", NormalizeRegionCode("KR"))
	assert.Equal(t, "", NormalizeRegionCode("FR"))
	assert.Equal(t, "", NormalizeRegionCode(""))
}

func TestRegionFromFilename(t *testing.T) {
	cases := map[string]string{
		"2023-01-02_US.tsv":       "US",
		"/data/gb-2023-01-02.tsv": "GB",
		"JP.2023.01.02":           "JP",
		"2023-01-02.tsv":          "",
		"usage_notes.tsv":         "",
		"FR_2023-01-02.tsv":       "",
	}
	for name, want := range cases {
		assert.Equal(t, want, RegionFromFilename(name), name)
	}
}
