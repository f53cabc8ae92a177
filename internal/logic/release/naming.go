package release

import "strings"

// Namer maps deployment ids to helm release names and back.
//
// With an empty prefix the release name is the id itself; otherwise it is
// prefix + "-" + id. Releases that do not carry the prefix are foreign.
type Namer struct {
	prefix string
}

// NewNamer creates a namer for the given, possibly empty, prefix.
func NewNamer(prefix string) Namer {
	return Namer{prefix: prefix}
}

// Prefix returns the configured prefix.
func (n Namer) Prefix() string {
	return n.prefix
}

// ReleaseName returns the release name for a deployment id.
func (n Namer) ReleaseName(id string) string {
	if n.prefix == "" {
		return id
	}

	return n.prefix + "-" + id
}

// DeploymentID returns the deployment id of a release, or false if the
// release is not managed under this prefix.
func (n Namer) DeploymentID(release string) (string, bool) {
	id := release

	if n.prefix != "" {
		var ok bool

		id, ok = strings.CutPrefix(release, n.prefix+"-")
		if !ok {
			return "", false
		}
	}

	if id == "" {
		return "", false
	}

	return id, true
}
