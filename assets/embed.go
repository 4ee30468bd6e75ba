package assets

import (
	_ "embed"
	"fmt"
)

// Facefinder contains pigo's frontal face cascade (MIT, see LICENSE.pigo).
//
//go:embed facefinder
var Facefinder []byte

// FaceCascade returns the embedded cascade bytes.
func FaceCascade() ([]byte, error) {
	if len(Facefinder) == 0 {
		return nil, fmt.Errorf("embedded facefinder is empty")
	}
	return Facefinder, nil
}
