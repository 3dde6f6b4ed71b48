package mediasearch

import (
	"net/url"
	"regexp"
	"strings"
)

const uploadHost = "upload.wikimedia.org"

var (
	imageExtensions = []string{".jpg", ".jpeg", ".png", ".svg", ".gif"}
	resizePrefixRe  = regexp.MustCompile(`^\d+px-`)
)

// HasImageExtension reports whether name ends in a recognized image
// extension, case-insensitively.
func HasImageExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Normalize rewrites an upload.wikimedia.org download URL into the
// canonical Special:FilePath form. Thumbnail paths
// (/thumb/a/ab/Name.jpg/240px-Name.jpg) yield the embedded original
// name; plain paths yield the final segment. Any surviving "NNNpx-"
// resize prefix is stripped. URLs on other hosts, and extractions that
// do not end in an image extension, are returned unchanged: when in
// doubt, never guess. Normalize is idempotent.
func Normalize(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || !strings.EqualFold(parsed.Host, uploadHost) {
		return rawURL
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 {
		return rawURL
	}

	name := segments[len(segments)-1]
	for i, seg := range segments {
		// thumb/<h>/<hh>/<original>/<size>px-<original>
		if seg == "thumb" && i+3 < len(segments) {
			name = segments[i+3]
			break
		}
	}

	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	name = resizePrefixRe.ReplaceAllString(name, "")

	if !HasImageExtension(name) {
		return rawURL
	}

	return FilePathURL(name)
}
