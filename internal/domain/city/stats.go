package city

// Stats is the derived per-request city report. Nothing in it is persisted
// except the happiness baseline the caller chooses to store back.
type Stats struct {
	Population    int `json:"population"`
	Happiness     int `json:"happiness"`
	PowerCapacity int `json:"power_capacity"`
	PowerUsage    int `json:"power_usage"`
	CrimeRate     int `json:"crime_rate"`
	FireRisk      int `json:"fire_risk"`
	TrafficLevel  int `json:"traffic_level"`
	TaxPerHour    int `json:"tax_per_hour"`

	RoadCount        int `json:"road_count"`
	ResidentialCount int `json:"residential_count"`
	CommercialCount  int `json:"commercial_count"`
	IndustrialCount  int `json:"industrial_count"`
	ParkCount        int `json:"park_count"`

	Congestion [][]int `json:"congestion_map"`
}

// StatsService derives city metrics from a grid. Stateless; safe for
// concurrent use across cities.
type StatsService struct{}

type point struct{ x, y int }

// Calculate runs the full scan: one pass over the grid for the accumulators
// and facility positions, then bounded coverage passes for crime and fire,
// then the happiness and congestion derivations.
func (StatsService) Calculate(g Grid, baselineHappiness int) Stats {
	var (
		police    []point
		fire      []point
		parks     []point
		s         Stats
		trafficIn int
	)

	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			kind := g.KindAt(x, y)

			if kind.IsRoad() {
				s.RoadCount++
				continue
			}

			s.Population += kind.PopulationBonus()
			if kind.ProducesPower() {
				s.PowerCapacity += kind.PowerProduction()
			} else {
				s.PowerUsage += kind.PowerConsumption()
			}
			s.TaxPerHour += kind.TaxPerHour()
			trafficIn += kind.TrafficImpact()

			switch kind {
			case CellPoliceStation:
				police = append(police, point{x, y})
			case CellFireStation:
				fire = append(fire, point{x, y})
			case CellPark:
				parks = append(parks, point{x, y})
			case CellResidentialLow, CellResidentialMid, CellResidentialHigh:
				s.ResidentialCount++
			case CellCommercial:
				s.CommercialCount++
			case CellIndustrial:
				s.IndustrialCount++
			}
		}
	}
	s.ParkCount = len(parks)

	policeCoverage := coverageRaster(police, CellPoliceStation.EffectRadius())
	fireCoverage := coverageRaster(fire, CellFireStation.EffectRadius())

	s.CrimeRate = protectionGap(g, policeCoverage, s.ResidentialCount)
	s.FireRisk = protectionGap(g, fireCoverage, s.ResidentialCount)

	buildingCount := s.ResidentialCount + s.CommercialCount + s.IndustrialCount
	if s.RoadCount > 0 {
		s.TrafficLevel = clampPercent(buildingCount*100/(s.RoadCount*2) + trafficIn)
	}

	s.Happiness = happiness(baselineHappiness, s.CrimeRate, s.FireRisk, s.TrafficLevel, s.ParkCount, s.PowerCapacity >= s.PowerUsage)
	s.Congestion = congestionRaster(g, s.RoadCount, buildingCount)
	return s
}

// HourlyTaxRate sums tax yield without the coverage passes. Used on the save
// path so offline accrual never has to re-parse the grid.
func (StatsService) HourlyTaxRate(g Grid) int {
	total := 0
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			total += g.KindAt(x, y).TaxPerHour()
		}
	}
	return total
}

// FacilityCoverage exposes the raster for one facility kind. The set of
// covered tiles only grows as facilities are added.
func (StatsService) FacilityCoverage(g Grid, kind CellKind) [][]bool {
	var facilities []point
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			if g.KindAt(x, y) == kind {
				facilities = append(facilities, point{x, y})
			}
		}
	}
	return coverageRaster(facilities, kind.EffectRadius())
}

// coverageRaster marks every tile within radius of any facility, by squared
// Euclidean distance. Rasters for different categories are independent.
func coverageRaster(facilities []point, radius int) [][]bool {
	covered := make([][]bool, GridSize)
	for x := range covered {
		covered[x] = make([]bool, GridSize)
	}
	for _, f := range facilities {
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				nx, ny := f.x+dx, f.y+dy
				if nx < 0 || nx >= GridSize || ny < 0 || ny >= GridSize {
					continue
				}
				if dx*dx+dy*dy <= radius*radius {
					covered[nx][ny] = true
				}
			}
		}
	}
	return covered
}

// protectionGap is the shared crime/fire formula: the percentage of
// residential tiles left outside the coverage raster. No residents, no risk.
func protectionGap(g Grid, covered [][]bool, residentialCount int) int {
	if residentialCount <= 0 {
		return 0
	}
	inReach := 0
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			if g.KindAt(x, y).IsResidential() && covered[x][y] {
				inReach++
			}
		}
	}
	return clampPercent(100 - inReach*100/max(1, residentialCount))
}

func happiness(baseline, crimeRate, fireRisk, trafficLevel, parkCount int, hasPower bool) int {
	h := baseline
	h -= crimeRate * crimeHappinessWeight / 100
	h -= fireRisk * fireHappinessWeight / 100
	h -= trafficLevel * trafficHappinessWeight / 100
	h += min(parkHappinessCap, parkCount*parkHappinessBonus)
	if !hasPower {
		h -= blackoutPenalty
	}
	return clampPercent(h)
}

// congestionRaster grades each road tile by city-wide load plus local
// building density in an inclusive square neighborhood. Non-road tiles stay
// at zero.
func congestionRaster(g Grid, roadCount, buildingCount int) [][]int {
	congestion := make([][]int, GridSize)
	for x := range congestion {
		congestion[x] = make([]int, GridSize)
	}
	if roadCount == 0 {
		return congestion
	}

	base := min(100, buildingCount*50/roadCount)
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			if !g.KindAt(x, y).IsRoad() {
				continue
			}
			congestion[x][y] = min(100, base+nearbyBuildings(g, x, y, congestionNeighborhood)*5)
		}
	}
	return congestion
}

func nearbyBuildings(g Grid, cx, cy, radius int) int {
	count := 0
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			nx, ny := cx+dx, cy+dy
			if nx < 0 || nx >= GridSize || ny < 0 || ny >= GridSize {
				continue
			}
			if g.KindAt(nx, ny).isBuildingTile() {
				count++
			}
		}
	}
	return count
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
