package handler

import (
	"errors"
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"pixiu/internal/storage"
)

// frontends maps URL prefixes to bucket folders. Longer prefixes come first
// so /pixium is not served from pixiu/.
var frontends = []struct {
	prefix string
	folder string
}{
	{"/pixium", "pixium"},
	{"/pixiu", "pixiu"},
}

// assetKey resolves a request path to an object key, or "" if the path is
// outside every frontend or tries to escape it.
func assetKey(p string) string {
	for _, f := range frontends {
		if p != f.prefix && !strings.HasPrefix(p, f.prefix+"/") {
			continue
		}
		sub := strings.TrimPrefix(strings.TrimPrefix(p, f.prefix), "/")
		if sub == "" || strings.HasSuffix(sub, "/") {
			sub += "index.html"
		}
		for _, seg := range strings.Split(sub, "/") {
			if seg == ".." {
				return ""
			}
		}
		return f.folder + "/" + sub
	}
	return ""
}

// Assets serves the built frontends from object storage. A nil store
// answers 404 for everything.
func Assets(store storage.Assets) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := assetKey(c.Path())
		if store == nil || key == "" {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
		}

		r, info, err := store.Get(c.UserContext(), key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
			}
			return internalError(c, err)
		}

		ct := info.ContentType
		if ct == "" || ct == fiber.MIMEOctetStream {
			ct = utils.GetMIME(path.Ext(key))
		}
		c.Set(fiber.HeaderContentType, ct)
		if info.ETag != "" {
			c.Set(fiber.HeaderETag, `"`+info.ETag+`"`)
		}
		// fasthttp closes r once the body is written.
		return c.SendStream(r, int(info.Size))
	}
}
