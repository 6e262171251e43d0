package domain

// Tag is an LRC header tag.
type Tag string

const (
	TagTitle   Tag = "ti"
	TagArtist  Tag = "ar"
	TagAlbum   Tag = "al"
	TagCreator Tag = "by"
	TagLength  Tag = "length"
)

// HeaderOrder returns the order in which header tags are written.
func HeaderOrder() []Tag {
	return []Tag{TagTitle, TagArtist, TagAlbum, TagCreator, TagLength}
}

// Label returns the human-readable field name for a tag.
func (t Tag) Label() string {
	switch t {
	case TagTitle:
		return "title"
	case TagArtist:
		return "artist"
	case TagAlbum:
		return "album"
	case TagCreator:
		return "creator"
	case TagLength:
		return "length"
	default:
		return string(t)
	}
}

// Metadata maps header tags to values. One value per tag; the last write wins.
type Metadata map[Tag]string

// Set stores value under tag, replacing any previous value. Empty values
// remove the tag.
func (m Metadata) Set(tag Tag, value string) {
	if value == "" {
		delete(m, tag)
		return
	}
	m[tag] = value
}

// Get returns the value stored under tag.
func (m Metadata) Get(tag Tag) (string, bool) {
	v, ok := m[tag]
	return v, ok
}
