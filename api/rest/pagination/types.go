package pagination

// Params holds pagination parameters from request
type Params struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// Meta holds pagination metadata for response
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}
