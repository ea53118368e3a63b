package models

type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	CopiesAvailable int    `json:"copies_available"`
}
