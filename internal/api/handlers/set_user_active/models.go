package set_user_active

// SetActiveRequest HTTP request model
type SetActiveRequest struct {
	Active *bool `json:"active"`
}

// SetActiveResponse HTTP response model
type SetActiveResponse struct {
	Email  string `json:"email"`
	Active bool   `json:"active"`
}
