package matching

// UpdateMatchStatusDTO is the payload for accepting or passing on a match.
type UpdateMatchStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=pending accepted passed"`
}

// GenerateResponse reports the outcome of a self-serve generation request.
type GenerateResponse struct {
	MatchesCreated int     `json:"matches_created"`
	MatchIDs       []int64 `json:"match_ids"`
}

// RegenerateResponse reports the outcome of a score refresh.
type RegenerateResponse struct {
	MatchesUpdated int `json:"matches_updated"`
}

// DeleteResponse reports how many matches a reset removed.
type DeleteResponse struct {
	MatchesDeleted int64 `json:"matches_deleted"`
}
