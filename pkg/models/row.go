package models

// FlashcardRow is one card's content bound to the shared template.
// At most one image source is authoritative at a time: setting the
// remote URL clears local data and vice versa.
type FlashcardRow struct {
	ID             string `json:"id"`
	Word           string `json:"word"`
	Subtitle       string `json:"subtitle"`
	ImageURL       string `json:"imageUrl,omitempty"`
	LocalImageData []byte `json:"localImageData,omitempty"`
}

func (r *FlashcardRow) SetImageURL(url string) {
	r.ImageURL = url
	r.LocalImageData = nil
}

func (r *FlashcardRow) SetLocalImage(data []byte) {
	r.LocalImageData = data
	r.ImageURL = ""
}

func (r *FlashcardRow) HasImage() bool {
	return r.ImageURL != "" || len(r.LocalImageData) > 0
}

// TextForRole maps a text region role onto the row field it renders.
func (r *FlashcardRow) TextForRole(role string) string {
	if role == RoleSubtitle {
		return r.Subtitle
	}
	return r.Word
}
