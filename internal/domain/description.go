package domain

// Graphic attribute values produced by the image-analysis collaborator.
// The attribute is binary: anything other than these two strings is upstream
// noise and scores zero.
const (
	GraphicPresent = "graphic"
	GraphicAbsent  = "no graphic"
)

// AnalyzedDescription is the structured visual-attribute summary of a
// garment, produced by the external image-analysis collaborator for either
// a query image or a product image.
type AnalyzedDescription struct {
	Genre   string   `json:"genre"`   // style genre, e.g. "casual"
	Length  string   `json:"length"`  // e.g. "short-sleeve"
	Type    string   `json:"type"`    // garment type, e.g. "denim shorts"
	Pattern string   `json:"pattern"` // e.g. "striped"
	Graphic string   `json:"graphic,omitempty"`
	Fabrics []string `json:"fabrics,omitempty"`
	Color   string   `json:"color,omitempty"`
}

// Valid reports whether the description carries the attributes required for
// matching. Type, genre, pattern and length must all be present; a
// description missing any of them must not be scored.
func (d *AnalyzedDescription) Valid() bool {
	if d == nil {
		return false
	}
	return d.Type != "" && d.Genre != "" && d.Pattern != "" && d.Length != ""
}
