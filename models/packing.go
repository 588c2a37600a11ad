package models

// PackingItem is a single checkable entry.
type PackingItem struct {
	ID      string `json:"id" bson:"id"`
	Text    string `json:"text" bson:"text"`
	Checked bool   `json:"checked" bson:"checked"`
}

// PackingCategory groups items under a heading.
type PackingCategory struct {
	ID    string        `json:"id" bson:"id"`
	Name  string        `json:"name" bson:"name"`
	Items []PackingItem `json:"items" bson:"items"`
}

// PackingListData is the per-identity document in packing_lists.
type PackingListData struct {
	UserID     string            `json:"-" bson:"userid,omitempty"`
	UpdatedAt  int64             `json:"updatedAt" bson:"updated_at"`
	Categories []PackingCategory `json:"categories" bson:"categories"`
}

// Progress returns round(100 * checked / total); zero items yields 0.
func (p PackingListData) Progress() int {
	total, checked := 0, 0
	for _, cat := range p.Categories {
		for _, item := range cat.Items {
			total++
			if item.Checked {
				checked++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(float64(checked)/float64(total)*100 + 0.5)
}
