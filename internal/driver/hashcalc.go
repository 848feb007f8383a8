package driver

import (
	"strconv"

	"tint/internal/project"
)

// cacheKey identifies the result of evaluating content under opts. Options
// that change the diagnostics or values are part of the key.
func cacheKey(content project.Digest, opts Options) project.Digest {
	return project.Combine(content,
		[]byte(strconv.Itoa(int(diskCacheSchemaVersion))),
		[]byte(strconv.FormatBool(opts.RuntimeSemantics)),
		[]byte(strconv.Itoa(opts.maxDiagnostics())),
	)
}
