package treasury

import "citygrid/internal/app/shared/citydto"

type Request struct {
	Identity string
	Owner    string
	CityName string
}

type CollectResponse struct {
	citydto.Report
	Collected int64 `json:"collected"`
}

type RewardResponse struct {
	citydto.Report
	Reward int64 `json:"reward"`
}
