// Package buildinfo reports the binary's version from the build metadata
// the Go toolchain embeds.
package buildinfo

import "runtime/debug"

// Info describes the running binary.
type Info struct {
	Version     string
	VcsRevision string
	VcsTime     string
	VcsModified bool
}

// Read collects version information from the embedded build metadata.
func Read() Info {
	info := Info{Version: "devel"}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	info.VcsRevision = setting(bi.Settings, "vcs.revision")
	info.VcsTime = setting(bi.Settings, "vcs.time")
	info.VcsModified = setting(bi.Settings, "vcs.modified") == "true"
	return info
}

// String returns a short human-readable version line.
func (i Info) String() string {
	out := i.Version
	if i.VcsRevision != "" {
		rev := i.VcsRevision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		out += " (" + rev
		if i.VcsModified {
			out += "-dirty"
		}
		out += ")"
	}
	return out
}

func setting(settings []debug.BuildSetting, key string) string {
	for _, kv := range settings {
		if kv.Key == key {
			return kv.Value
		}
	}
	return ""
}
