package platform

import (
	"time"

	"github.com/indrora/acf/acf/format"
)

// DOS-style attribute bits. The engine treats the attribute byte as
// opaque; these names exist for the providers and display code.
const (
	AttrReadOnly  uint8 = 0x01
	AttrHidden    uint8 = 0x02
	AttrSystem    uint8 = 0x04
	AttrDirectory uint8 = 0x10
	AttrArchive   uint8 = 0x20
)

// Provider supplies the platform hooks the engine depends on: packing
// file times into the 32-bit DOS representation and mapping the opaque
// 8-bit attribute byte to whatever the host filesystem supports.
type Provider struct {
	PackTime     func(t time.Time) uint32
	UnpackTime   func(v uint32) time.Time
	GetAttribute func(path string) uint8
	SetAttribute func(path string, attr uint8) error
}

// Default returns the provider for the host OS.
func Default() Provider {
	return Provider{
		PackTime:     format.DosTime,
		UnpackTime:   format.DosTimeToTime,
		GetAttribute: getAttribute,
		SetAttribute: setAttribute,
	}
}
