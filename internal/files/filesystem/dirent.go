package filesystem

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// inodeWidth is the size of the little-endian inode field of a record.
const inodeWidth = 8

// DirEntry is a decoded directory entry record.
type DirEntry struct {
	Inode uint64
	Name  string
}

// IsFree reports whether the record is an unused or deleted slot.
func (e DirEntry) IsFree() bool { return e.Inode == 0 }

// RecordSize returns the size of one directory entry record.
func RecordSize(nameMax int) int {
	return inodeWidth + nameMax
}

// EncodeDirEntry writes e into rec, which must be exactly one record long.
// The name is NUL-padded; a name of exactly nameMax bytes has no terminator.
func EncodeDirEntry(rec []byte, e DirEntry, nameMax int) error {
	if len(rec) != RecordSize(nameMax) {
		return fmt.Errorf("record is %d bytes, want %d", len(rec), RecordSize(nameMax))
	}
	if len(e.Name) > nameMax {
		return fmt.Errorf("name %q exceeds %d bytes", e.Name, nameMax)
	}
	binary.LittleEndian.PutUint64(rec, e.Inode)
	field := rec[inodeWidth:]
	n := copy(field, e.Name)
	clear(field[n:])
	return nil
}

// DecodeDirEntry parses one directory entry record.
func DecodeDirEntry(rec []byte, nameMax int) (DirEntry, error) {
	if len(rec) != RecordSize(nameMax) {
		return DirEntry{}, fmt.Errorf("record is %d bytes, want %d", len(rec), RecordSize(nameMax))
	}
	field := rec[inodeWidth:]
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return DirEntry{
		Inode: binary.LittleEndian.Uint64(rec),
		Name:  string(field),
	}, nil
}

// encodeDirEntries builds the content of a directory handle.
func encodeDirEntries(entries []DirEntry, nameMax int) ([]byte, error) {
	size := RecordSize(nameMax)
	out := make([]byte, len(entries)*size)
	for i, e := range entries {
		if err := EncodeDirEntry(out[i*size:(i+1)*size], e, nameMax); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// recordReader serves directory content in whole records.
type recordReader struct {
	records []byte
	size    int
	off     int
}

func newRecordReader(entries []DirEntry, nameMax int) (*recordReader, error) {
	records, err := encodeDirEntries(entries, nameMax)
	if err != nil {
		return nil, err
	}
	return &recordReader{records: records, size: RecordSize(nameMax)}, nil
}

func (r *recordReader) Read(p []byte) (int, error) {
	if r.off >= len(r.records) {
		return 0, io.EOF
	}
	want := len(p) / r.size * r.size
	if want == 0 {
		return 0, io.ErrShortBuffer
	}
	n := copy(p[:want], r.records[r.off:])
	r.off += n
	return n, nil
}
