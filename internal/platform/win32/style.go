// Package win32 drives the panel window through user32.
package win32

// Extended window style bits
const (
	gwlExStyle       int32 = -20
	wsExTransparent  int32 = 0x00000020
	wsExLayered      int32 = 0x00080000
	monitorNearest         = 2
	swpNoSize              = 0x0001
	swpNoMove              = 0x0002
	swpNoZOrder            = 0x0004
	swpNoActivate          = 0x0010
)

// clickThroughStyle returns cur with the layered bit set and the transparent
// bit set or cleared. Other bits are untouched.
func clickThroughStyle(cur int32, enable bool) int32 {
	style := cur | wsExLayered
	if enable {
		return style | wsExTransparent
	}
	return style &^ wsExTransparent
}
