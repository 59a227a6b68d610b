package cache

import (
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// Key joins parts with ':' into a deterministic cache key. Empty parts are kept
// so positional segments never shift.
func Key(parts ...string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, part := range parts {
		if i > 0 {
			_ = buf.WriteByte(':')
		}
		_, _ = buf.WriteString(part)
	}
	return buf.String()
}

// IDPart formats an id segment, using fallback for ids that are not set.
func IDPart(id int64, fallback string) string {
	if id <= 0 {
		return fallback
	}
	return strconv.FormatInt(id, 10)
}
