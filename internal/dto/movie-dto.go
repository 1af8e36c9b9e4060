package dto

import "encoding/json"

type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateMovieRequest struct {
	IdbID       int             `json:"idb_id" validate:"required"`
	Category    string          `json:"category" validate:"required,oneof=favorites watched"`
	Title       string          `json:"title" validate:"required"`
	PosterPath  *string         `json:"poster_path,omitempty"`
	VoteAverage float64         `json:"vote_average"`
	Genres      json.RawMessage `json:"genres" validate:"required"`
	ReleaseDate string          `json:"release_date" validate:"required"`
	Tagline     *string         `json:"tagline,omitempty"`
	Runtime     *int            `json:"runtime,omitempty"`
	Budget      *int            `json:"budget,omitempty"`
	Overview    string          `json:"overview"`
}

type UpdateMovieRequest struct {
	Category string `json:"category" validate:"required,oneof=favorites watched"`
}
