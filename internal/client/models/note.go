package models

// Note is a free-form text note with display attributes.
type Note struct {
	Meta
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
	Color    string `json:"color"`
	IsPinned bool   `json:"isPinned"`
}

// NotePatch is a partial Note update.
type NotePatch struct {
	Title    *string
	Content  *string
	Category *string
	Color    *string
	IsPinned *bool
}

func (p NotePatch) Apply(rec Syncable) bool {
	n, ok := rec.(*Note)
	if !ok {
		return false
	}
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.IsPinned != nil {
		n.IsPinned = *p.IsPinned
	}
	return true
}
