package model

type Notification struct {
	ID    string `json:"id"`
	User  string `json:"user"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Read  bool   `json:"read"`
}
