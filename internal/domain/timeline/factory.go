package timeline

func NewFromCreateRequest(req CreateEntryRequest) Entry {
	return Entry{
		Date:        req.Date,
		Title:       req.Title,
		Description: req.Description,
		ImgURL:      req.ImgURL,
		Icon:        req.Icon,
	}
}

func NewFromUpdateRequest(id int, req UpdateEntryRequest) Entry {
	e := NewFromCreateRequest(CreateEntryRequest(req))
	e.ID = id
	return e
}
