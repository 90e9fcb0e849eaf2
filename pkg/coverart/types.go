package coverart

// Image represents a single artwork entry in the archive's image index.
type Image struct {
	ID         int64      `json:"id"`
	Types      []string   `json:"types"`
	Front      bool       `json:"front"`
	Back       bool       `json:"back"`
	Approved   bool       `json:"approved"`
	Comment    string     `json:"comment,omitempty"`
	Image      string     `json:"image"` // Full-resolution image URL
	Thumbnails Thumbnails `json:"thumbnails"`
}

// Thumbnails holds the pre-rendered thumbnail URLs for an image. Not
// every size is guaranteed to exist.
type Thumbnails struct {
	Size250  string `json:"250,omitempty"`
	Size500  string `json:"500,omitempty"`
	Size1200 string `json:"1200,omitempty"`
	Small    string `json:"small,omitempty"`
	Large    string `json:"large,omitempty"`
}

// imageIndex is the envelope of an image index response.
type imageIndex struct {
	Images  []Image `json:"images"`
	Release string  `json:"release,omitempty"`
}

// IsFront reports whether the image is classified as a front cover.
//
// The archive marks fronts both with the "front" flag and with a
// "Front" entry in the types list; older entries may only carry the
// latter.
func (i Image) IsFront() bool {
	if i.Front {
		return true
	}
	for _, t := range i.Types {
		if t == "Front" {
			return true
		}
	}
	return false
}

// BestURL returns the preferred rendition of the image: the 500px
// thumbnail, then the 1200px one, then the full-resolution original.
// Returns an empty string if none are present.
func (i Image) BestURL() string {
	if i.Thumbnails.Size500 != "" {
		return i.Thumbnails.Size500
	}
	if i.Thumbnails.Size1200 != "" {
		return i.Thumbnails.Size1200
	}
	return i.Image
}
