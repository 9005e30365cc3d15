package images

import (
	"fmt"
	"strings"

	"github.com/desertthunder/mixdeck/internal/models"
)

// localImagePrefix marks images served by the local daemon's own HTTP server.
const localImagePrefix = "/images/"

// Server identifies the local daemon that serves relative image paths.
type Server struct {
	Host string
	Port int
}

func (s Server) absolute(path string) string {
	if !strings.HasPrefix(path, localImagePrefix) || s.Host == "" {
		return path
	}
	return fmt.Sprintf("//%s:%d%s", s.Host, s.Port, path)
}

// Digest prepares local daemon images for [Normalize].
//
// Objects that carry a uri but no url get the uri as their url, and relative /images/ paths are
// rewritten to point at the daemon so they resolve behind a proxy. Objects are copied, never
// modified in place.
func Digest(server Server, raw []any) []any {
	digested := make([]any, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			digested = append(digested, server.absolute(v))
		default:
			obj, ok := models.AsRecord(v)
			if !ok {
				digested = append(digested, item)
				continue
			}
			image := obj.Clone()
			url, _ := image.String("url")
			if url == "" {
				url, _ = image.String("uri")
			}
			if url != "" {
				image["url"] = server.absolute(url)
			}
			digested = append(digested, map[string]any(image))
		}
	}
	return digested
}
