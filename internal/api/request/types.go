// Package request holds the JSON bodies accepted by the API.
package request

// Move is the body of POST /games/{id}/moves
type Move struct {
	Direction string `json:"direction"`
}
