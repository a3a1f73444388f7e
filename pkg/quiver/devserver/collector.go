package devserver

import (
	"errors"

	"github.com/veldran/quiver/pkg/quiver"
)

type collectorKey struct{}

// collector implements quiver.Directory by buffering the items a handler
// emits so the HTTP layer can render them after the dispatch returns.
type collector struct {
	items []quiver.ListItem
	ended bool
}

func (c *collector) Add(item quiver.ListItem) error {
	if c.ended {
		return errors.New("directory already ended")
	}
	c.items = append(c.items, item)
	return nil
}

func (c *collector) End() error {
	c.ended = true
	return nil
}

// directoryFromContext resolves the per-request collector stashed in the
// request context. Outside a devserver request it returns nil and the
// router falls back to a discarding directory.
func directoryFromContext(c *quiver.Context) quiver.Directory {
	if col, ok := c.Context().Value(collectorKey{}).(*collector); ok {
		return col
	}
	return nil
}
