package dto

type FactResponse struct {
	Fact string `json:"fact"`
}
