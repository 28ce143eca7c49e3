package model

// Book là một row trong bảng books
type Book struct {
	ID     int32  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Author string `json:"author" db:"author"`
}

// BookRequest là body của POST /api/book và PUT /api/book/:id.
// Không có id: id do database sinh và không bao giờ đổi.
type BookRequest struct {
	Name   string `json:"name" db:"name" validate:"required,max=255"`
	Author string `json:"author" db:"author" validate:"required,max=255"`
}
