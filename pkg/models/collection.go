package models

// Collection is a user's wallpaper collection.
type Collection struct {
	ID     int    `json:"id"`
	Label  string `json:"label"`
	Views  int    `json:"views"`
	Public int    `json:"public"`
	Count  int    `json:"count"`
}

// IsPublic reports whether the collection is visible to other users.
func (c Collection) IsPublic() bool {
	return c.Public == 1
}
