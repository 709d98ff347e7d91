package cities

import "time"

type CreateRequest struct {
	Identity string
	Owner    string
	CityName string

	// Optional map template to start from instead of the default grid.
	TemplateName string
	TemplateGrid [][]int
}

type ListRequest struct {
	Identity string
	Owner    string
}

type DeleteRequest struct {
	Identity string
	Owner    string
	Slug     string
}

type Summary struct {
	CityName     string    `json:"city_name"`
	Slug         string    `json:"slug"`
	TemplateName string    `json:"template_name,omitempty"`
	Population   int       `json:"population"`
	Money        int64     `json:"money"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListResponse struct {
	Cities []Summary `json:"cities"`
}

type CreateResponse struct {
	Summary
}
