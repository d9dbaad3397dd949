package employee

// EmployeeResponse is the registry entry exposed to clients
type EmployeeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{ID: e.ID, Name: e.Name}
}
