// Package inspect builds and prints the reports of the stat utility.
package inspect

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/vvka-141/rummage/internal/files/filesystem"
	"github.com/vvka-141/rummage/pkg/rummage"
)

// Report is the result of inspecting one path.
type Report struct {
	Path string
	Meta rummage.Metadata

	// Follow records whether symlinks were followed.
	Follow bool

	// LinkTarget is the symlink target when Path names a symlink.
	LinkTarget string

	// Target holds the metadata of the link target when symlinks were not
	// followed. It is nil when the target cannot be reached.
	Target *rummage.Metadata
}

// IsSymlink reports whether the inspected path is a symlink.
func (r Report) IsSymlink() bool { return r.LinkTarget != "" }

// Inspect collects the metadata of p. With follow set the object the path
// resolves to is inspected through an open handle; otherwise a symlink is
// inspected itself and its target is looked up separately.
func Inspect(store filesystem.Store, p string, follow bool) (Report, error) {
	if follow {
		return inspectFollow(store, p)
	}
	return inspectLink(store, p)
}

func inspectFollow(store filesystem.Store, p string) (Report, error) {
	h, err := store.Open(p)
	if err != nil {
		return Report{}, fmt.Errorf("%w %s: %w", rummage.ErrOpen, p, err)
	}
	meta, err := h.Stat()
	h.Close()
	if err != nil {
		return Report{}, fmt.Errorf("%w %s: %w", rummage.ErrStat, p, err)
	}

	report := Report{Path: p, Meta: meta, Follow: true}
	if target, err := store.Readlink(p); err == nil {
		report.LinkTarget = target
	}
	return report, nil
}

func inspectLink(store filesystem.Store, p string) (Report, error) {
	meta, err := store.Lstat(p)
	if err != nil {
		return Report{}, fmt.Errorf("%w %s: %w", rummage.ErrStat, p, err)
	}

	report := Report{Path: p, Meta: meta}
	target, err := store.Readlink(p)
	if err != nil || target == "" {
		return report, nil
	}
	report.LinkTarget = target
	if targetMeta, err := store.Stat(resolveTarget(p, target)); err == nil {
		report.Target = &targetMeta
	}
	return report, nil
}

// resolveTarget locates a relative symlink target next to the link.
func resolveTarget(link, target string) string {
	if strings.HasPrefix(target, "/") {
		return target
	}
	dir := path.Dir(link)
	if dir == "." {
		return target
	}
	return dir + "/" + target
}

// WriteTo prints the report in stat's layout.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "  File: %s\n", r.Path)

	switch {
	case r.Follow:
		fmt.Fprintf(&b, "  Type: %s\n", r.Meta.Type)
		if r.IsSymlink() {
			fmt.Fprintf(&b, "  Note: accessed via symlink -> %s\n", r.LinkTarget)
		}
	case r.IsSymlink():
		fmt.Fprintf(&b, "  Type: %s\n", rummage.TypeSymlink)
		fmt.Fprintf(&b, "  Link: %s -> %s\n", r.Path, r.LinkTarget)
	default:
		fmt.Fprintf(&b, "  Type: %s\n", r.Meta.Type)
	}

	fmt.Fprintf(&b, "  Inode: %d\n", r.Meta.Inode)
	fmt.Fprintf(&b, "  Size: %d bytes\n", r.Meta.Size)
	fmt.Fprintf(&b, "  Links: %d\n", r.Meta.Links)
	fmt.Fprintf(&b, "  Device: %d/%d\n", r.Meta.DeviceMajor(), r.Meta.DeviceMinor())

	if !r.Follow && r.IsSymlink() {
		if r.Target == nil {
			b.WriteString("  Target: [invalid or inaccessible]\n")
		} else {
			fmt.Fprintf(&b, "  Target Type: %s\n", r.Target.Type)
			fmt.Fprintf(&b, "  Target Inode: %d\n", r.Target.Inode)
			fmt.Fprintf(&b, "  Target Size: %d bytes\n", r.Target.Size)
			fmt.Fprintf(&b, "  Target Links: %d\n", r.Target.Links)
		}
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
