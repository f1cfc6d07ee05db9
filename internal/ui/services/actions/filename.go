package actions

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FileName derives a share file name from a photo URL: the last path segment
// before any query, URL-decoded. index is used for the photo-N.jpg fallback.
func FileName(rawURL string, index int) string {
	fallback := fmt.Sprintf("photo-%d.jpg", index+1)

	clean := rawURL
	if q := strings.IndexByte(clean, '?'); q >= 0 {
		clean = clean[:q]
	}
	seg := clean[strings.LastIndexByte(clean, '/')+1:]

	name, err := url.PathUnescape(seg)
	if err != nil || name == "" {
		return fallback
	}
	return norm.NFC.String(name)
}
