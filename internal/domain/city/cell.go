package city

// CellKind identifies what occupies a single grid tile. The numeric codes are
// part of the persisted grid format and must never be renumbered.
type CellKind int

const (
	CellEmpty      CellKind = 0
	CellRoad       CellKind = 1
	CellLockedRoad CellKind = 2

	CellResidentialLow  CellKind = 3
	CellResidentialMid  CellKind = 4
	CellResidentialHigh CellKind = 5

	CellCommercial CellKind = 6
	CellIndustrial CellKind = 7

	CellZoneResidential CellKind = 8
	CellZoneCommercial  CellKind = 9
	CellZoneIndustrial  CellKind = 10

	CellWater  CellKind = 11
	CellBridge CellKind = 12

	CellRoad4Lane       CellKind = 13
	CellLockedRoad4Lane CellKind = 14

	CellPowerPlant    CellKind = 20
	CellPoliceStation CellKind = 21
	CellFireStation   CellKind = 22
	CellPark          CellKind = 23
	CellSchool        CellKind = 24
	CellHospital      CellKind = 25

	CellLargePowerPlant CellKind = 30
	CellSubwayStation   CellKind = 31
	CellAirport         CellKind = 32
	CellLandmark        CellKind = 33
)

type cellAttrs struct {
	name            string
	populationBonus int
	powerDelta      int // negative values produce power
	taxPerHour      int
	trafficImpact   int
	buildCost       int
	apCost          int
	effectRadius    int
}

var cellTable = map[CellKind]cellAttrs{
	CellEmpty:      {name: "empty"},
	CellRoad:       {name: "road", buildCost: 50},
	CellLockedRoad: {name: "locked road"},

	CellResidentialLow:  {name: "low residential", populationBonus: 5, powerDelta: 1, taxPerHour: 100},
	CellResidentialMid:  {name: "mid residential", populationBonus: 8, powerDelta: 2, taxPerHour: 300},
	CellResidentialHigh: {name: "high residential", populationBonus: 10, powerDelta: 3, taxPerHour: 800},

	CellCommercial: {name: "commercial", powerDelta: 2, taxPerHour: 200, trafficImpact: 10},
	CellIndustrial: {name: "industrial", powerDelta: 3, taxPerHour: 150, trafficImpact: 15},

	CellZoneResidential: {name: "residential zone", buildCost: 100, apCost: 1},
	CellZoneCommercial:  {name: "commercial zone", buildCost: 100, apCost: 1},
	CellZoneIndustrial:  {name: "industrial zone", buildCost: 100, apCost: 1},

	CellWater:  {name: "waterway", buildCost: 50},
	CellBridge: {name: "bridge", buildCost: 75},

	CellRoad4Lane:       {name: "4-lane road", buildCost: 100},
	CellLockedRoad4Lane: {name: "locked 4-lane road"},

	CellPowerPlant:    {name: "power plant", powerDelta: -50, trafficImpact: 5, buildCost: 5000, apCost: 2, effectRadius: 10},
	CellPoliceStation: {name: "police station", powerDelta: 2, trafficImpact: 3, buildCost: 3000, apCost: 2, effectRadius: 8},
	CellFireStation:   {name: "fire station", powerDelta: 2, trafficImpact: 3, buildCost: 3000, apCost: 2, effectRadius: 8},
	CellPark:          {name: "park", trafficImpact: -5, buildCost: 1000, apCost: 2, effectRadius: 5},
	CellSchool:        {name: "school", powerDelta: 3, trafficImpact: 8, buildCost: 4000, apCost: 2, effectRadius: 6},
	CellHospital:      {name: "hospital", powerDelta: 5, trafficImpact: 10, buildCost: 6000, apCost: 2, effectRadius: 6},

	CellLargePowerPlant: {name: "large power plant", powerDelta: -150, trafficImpact: 10, buildCost: 15000, apCost: 3, effectRadius: 15},
	CellSubwayStation:   {name: "subway station", powerDelta: 5, trafficImpact: -20, buildCost: 20000, apCost: 3, effectRadius: 12},
	CellAirport:         {name: "airport", powerDelta: 20, taxPerHour: 500, trafficImpact: 30, buildCost: 100000, apCost: 5},
	CellLandmark:        {name: "landmark", powerDelta: 10, trafficImpact: 20, buildCost: 50000, apCost: 5},
}

// KindOf maps a raw cell code to its kind. Unknown codes degrade to empty
// land so a grid saved by a newer client still loads.
func KindOf(code int) CellKind {
	if _, ok := cellTable[CellKind(code)]; ok {
		return CellKind(code)
	}
	return CellEmpty
}

func (k CellKind) String() string {
	return cellTable[k].name
}

func (k CellKind) PopulationBonus() int { return cellTable[k].populationBonus }
func (k CellKind) TaxPerHour() int      { return cellTable[k].taxPerHour }
func (k CellKind) TrafficImpact() int   { return cellTable[k].trafficImpact }
func (k CellKind) BuildCost() int       { return cellTable[k].buildCost }
func (k CellKind) ActionPointCost() int { return cellTable[k].apCost }
func (k CellKind) EffectRadius() int    { return cellTable[k].effectRadius }

func (k CellKind) ProducesPower() bool {
	return cellTable[k].powerDelta < 0
}

func (k CellKind) PowerProduction() int {
	if d := cellTable[k].powerDelta; d < 0 {
		return -d
	}
	return 0
}

func (k CellKind) PowerConsumption() int {
	if d := cellTable[k].powerDelta; d > 0 {
		return d
	}
	return 0
}

func (k CellKind) IsRoad() bool {
	switch k {
	case CellRoad, CellLockedRoad, CellRoad4Lane, CellLockedRoad4Lane, CellBridge:
		return true
	}
	return false
}

// IsLockedRoad reports whether the tile is part of the immutable map
// boundary. Locked tiles may only ever swap between the two locked variants.
func (k CellKind) IsLockedRoad() bool {
	return k == CellLockedRoad || k == CellLockedRoad4Lane
}

func (k CellKind) IsResidential() bool {
	switch k {
	case CellResidentialLow, CellResidentialMid, CellResidentialHigh:
		return true
	}
	return false
}

// IsZoneDesignation reports whether the tile is a player-painted zone that
// citizens build on, as opposed to a finished building.
func (k CellKind) IsZoneDesignation() bool {
	switch k {
	case CellZoneResidential, CellZoneCommercial, CellZoneIndustrial:
		return true
	}
	return false
}

func (k CellKind) IsPublicBuilding() bool {
	return k >= 20 && k < 40
}

// isBuildingTile is the density class used by traffic and congestion math.
func (k CellKind) isBuildingTile() bool {
	return k.IsResidential() || k == CellCommercial || k == CellIndustrial
}
