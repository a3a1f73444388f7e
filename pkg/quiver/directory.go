package quiver

// ListItem is one entry in a plugin directory listing. URL is typically a
// self-URL produced by URLFor so that activating the item dispatches back
// into the router.
type ListItem struct {
	Label    string
	URL      string
	Thumb    string
	IsFolder bool
	Info     map[string]string
}

// Directory receives the listing a handler emits. Rendering is owned by the
// surrounding host (GUI, development server, CLI); the router only carries
// items across this interface.
type Directory interface {
	// Add appends one item to the listing.
	Add(item ListItem) error

	// End marks the listing complete.
	End() error
}

// DirectoryFactory produces the Directory for one dispatch. Returning nil
// selects a discarding implementation.
type DirectoryFactory func(*Context) Directory

type nopDirectory struct{}

func (nopDirectory) Add(ListItem) error { return nil }
func (nopDirectory) End() error         { return nil }
