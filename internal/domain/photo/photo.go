package photo

type Photo struct {
	ID       int    `json:"id" db:"id"`
	Category string `json:"category" db:"category"`
	ImgURL   string `json:"imgUrl" db:"img_url"`
}

type CreatePhotoRequest struct {
	Category string `json:"category" binding:"required,max=80"`
	ImgURL   string `json:"imgUrl" binding:"required,max=2048"`
}

type UpdatePhotoRequest struct {
	Category string `json:"category" binding:"required,max=80"`
	ImgURL   string `json:"imgUrl" binding:"required,max=2048"`
}

func NewFromCreateRequest(req CreatePhotoRequest) Photo {
	return Photo{Category: req.Category, ImgURL: req.ImgURL}
}

func NewFromUpdateRequest(id int, req UpdatePhotoRequest) Photo {
	return Photo{ID: id, Category: req.Category, ImgURL: req.ImgURL}
}
