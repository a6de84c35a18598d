package paths

import (
	"path"
	"runtime"
	"strings"
)

// DriveSet holds the three roots derived for one request.
type DriveSet struct {
	Primary string // lab server share
	Mirror  string // mirrored results share, per experiment
	Raw     string // raw imaging share, per experiment
}

// Root returns the drive for a catalog role.
func (d DriveSet) Root(r Role) string {
	switch r {
	case RolePrimary:
		return d.Primary
	case RoleMirror:
		return d.Mirror
	case RoleRaw:
		return d.Raw
	default:
		return ""
	}
}

func (d DriveSet) list() [3]string { return [3]string{d.Primary, d.Mirror, d.Raw} }

// Platform maps a request to the drive roots of one deployment convention.
type Platform interface {
	Name() string
	Drives(req Request) DriveSet
}

// Unix is the file server convention: every share is mounted under Mount.
type Unix struct {
	Mount string // defaults to /mnt
}

func (Unix) Name() string { return "unix" }

func (u Unix) Drives(req Request) DriveSet {
	req = req.withDefaults()
	mount := u.Mount
	if mount == "" {
		mount = "/mnt"
	}
	tiff := append([]string{mount}, splitTiffBase(req.TiffBase)...)
	tiff = append(tiff, req.Subject, req.Date)
	return DriveSet{
		Primary: joinPath(mount, "franken"),
		Mirror:  joinPath(mount, "e", req.Root, req.Subject, req.Date),
		Raw:     joinPath(tiff...),
	}
}

// Windows is the acquisition workstation convention built on drive letters.
type Windows struct{}

func (Windows) Name() string { return "windows" }

func (Windows) Drives(req Request) DriveSet {
	req = req.withDefaults()
	parts := splitTiffBase(req.TiffBase)
	tiff := []string{req.Subject, req.Date}
	if len(parts) > 0 {
		tiff = append([]string{parts[0] + ":/"}, append(parts[1:], tiff...)...)
	}
	return DriveSet{
		Primary: req.FrankenDrive + ":/",
		Mirror:  joinPath("e:/", req.Root, req.Subject, req.Date),
		Raw:     joinPath(tiff...),
	}
}

// PlatformFor returns the strategy for a GOOS-style tag. Only "windows" uses
// drive letters; every other tag is treated as unix-like.
func PlatformFor(tag string) Platform {
	if strings.EqualFold(tag, "windows") {
		return Windows{}
	}
	return Unix{}
}

// DetectPlatform returns the strategy for the host OS.
func DetectPlatform() Platform { return PlatformFor(runtime.GOOS) }

// joinPath joins slash-separated elements. An absolute element restarts the
// path, so an absolute Root replaces the mount prefix. A leading slash on
// windows keeps the drive letter of the path built so far.
func joinPath(elems ...string) string {
	var base string
	for _, e := range elems {
		switch {
		case e == "":
			continue
		case hasDrive(e):
			base = e
		case strings.HasPrefix(e, "/"):
			if hasDrive(base) {
				base = base[:2] + e
			} else {
				base = e
			}
		case base == "":
			base = e
		default:
			base = strings.TrimSuffix(base, "/") + "/" + e
		}
	}
	if hasDrive(base) && len(base) <= 3 {
		return base[:2] + "/"
	}
	if hasDrive(base) {
		return base[:3] + strings.TrimPrefix(path.Clean(base[2:]), "/")
	}
	return path.Clean(base)
}

func hasDrive(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// splitTiffBase drops colons and splits on slashes, so "f:/experiments"
// becomes [f experiments]. Empty segments are discarded.
func splitTiffBase(base string) []string {
	var parts []string
	for _, p := range strings.Split(strings.ReplaceAll(base, ":", ""), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
