package rummage

import "fmt"

// FileType is the kind of object a path names in the store.
type FileType int

const (
	// TypeNone is the zero value. As a predicate it matches every type.
	TypeNone FileType = iota
	TypeFile
	TypeDirectory
	TypeDevice
	TypeSymlink
)

// String returns the name used in stat reports.
func (t FileType) String() string {
	switch t {
	case TypeFile:
		return "regular file"
	case TypeDirectory:
		return "directory"
	case TypeDevice:
		return "device"
	case TypeSymlink:
		return "symbolic link"
	default:
		return "unknown"
	}
}

// ParseTypeFlag converts the argument of find's -type option.
func ParseTypeFlag(s string) (FileType, error) {
	switch s {
	case "f":
		return TypeFile, nil
	case "d":
		return TypeDirectory, nil
	default:
		return TypeNone, fmt.Errorf("unknown type %s: %w", s, ErrUsage)
	}
}

// Metadata describes one object in the store.
type Metadata struct {
	Type   FileType
	Inode  uint64
	Size   int64
	Links  uint32
	Device uint64
}

// IsDir reports whether the object is a directory.
func (m Metadata) IsDir() bool { return m.Type == TypeDirectory }

// DeviceMajor returns the major half of the device id as stat prints it.
func (m Metadata) DeviceMajor() uint64 { return m.Device >> 8 }

// DeviceMinor returns the minor half of the device id as stat prints it.
func (m Metadata) DeviceMinor() uint64 { return m.Device & 0xFF }
