package mapupdate

import "citygrid/internal/app/shared/citydto"

type Request struct {
	Identity string
	Owner    string
	CityName string

	Grid  [][]int
	Money int64

	BuildingsData string
	CameraState   string
	GameState     string
}

type Response struct {
	citydto.Report
	AnomalyReason string `json:"anomaly_reason,omitempty"`
}
