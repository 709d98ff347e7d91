package cityview

import "citygrid/internal/app/shared/citydto"

type Request struct {
	Identity string
	Owner    string
	CityName string
}

type Response struct {
	citydto.Report
	DailyReset bool `json:"daily_reset"`
}
