// Package paths resolves the filesystem locations of one imaging experiment.
//
// Usage:
//
//	r, err := paths.New(paths.WithPlatform(paths.Unix{Mount: "/mnt"}))
//	res, err := r.Resolve(ctx, paths.DefaultRequest("holography", "M01", "220101"))
//	s2p, ok := res.Get("s2p")
//
// A resolution derives three drive roots (primary share, mirrored results share,
// raw imaging share), checks that they exist, and then searches each root for the
// artifacts named in a Catalog. An artifact with no match is reported as the
// "path NA" sentinel, never as an error.
package paths
