package note

func NewFromCreateRequest(req CreateNoteRequest) Note {
	return Note{
		Title:   req.Title,
		Content: req.Content,
	}
}

func NewFromUpdateRequest(id int, req UpdateNoteRequest) Note {
	return Note{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
	}
}
