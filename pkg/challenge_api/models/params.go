package models

// ChallengeParams binds the challenge id from the route.
type ChallengeParams struct {
	Id int `path:"id"`
}

// ListChallengesParams are the admin listing query parameters.
type ListChallengesParams struct {
	Page    int `query:"page"`
	PerPage int `query:"perPage"`
}

type Pagination struct {
	Next           *int `json:"next,omitempty"`
	Previous       *int `json:"previous,omitempty"`
	CurrentPage    int  `json:"currentPage"`
	RecordsPerPage int  `json:"recordsPerPage"`
	TotalPages     int  `json:"totalPages"`
	TotalRecords   int  `json:"totalRecords"`
}
