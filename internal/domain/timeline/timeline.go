package timeline

// Entry is one dated milestone on the timeline. Date is free-form text
// ("June 2019", "2019-06-14") and is stored exactly as supplied.
type Entry struct {
	ID          int    `json:"id" db:"id"`
	Date        string `json:"date" db:"date"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	ImgURL      string `json:"imgUrl" db:"img_url"`
	Icon        string `json:"icon" db:"icon"`
}

type CreateEntryRequest struct {
	Date        string `json:"date" binding:"omitempty,max=64"`
	Title       string `json:"title" binding:"omitempty,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	ImgURL      string `json:"imgUrl" binding:"omitempty,max=2048"`
	Icon        string `json:"icon" binding:"omitempty,max=64"`
}

type UpdateEntryRequest struct {
	Date        string `json:"date" binding:"omitempty,max=64"`
	Title       string `json:"title" binding:"omitempty,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	ImgURL      string `json:"imgUrl" binding:"omitempty,max=2048"`
	Icon        string `json:"icon" binding:"omitempty,max=64"`
}
