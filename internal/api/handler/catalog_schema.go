package handler

type reviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}
