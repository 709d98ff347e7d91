package city

// Guard checks are the pure half of the anti-cheat pipeline: deterministic
// functions of the stored and proposed grids with no clock or shared state.

// LockedCellsPreserved verifies the immutable map boundary. A tile that is
// currently a locked road may swap between the two locked variants but can
// never become anything else. Returns the first offending coordinate.
func LockedCellsPreserved(old, proposed Grid) (x, y int, ok bool) {
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			if !old.KindAt(x, y).IsLockedRoad() {
				continue
			}
			if !proposed.KindAt(x, y).IsLockedRoad() {
				return x, y, false
			}
		}
	}
	return 0, 0, true
}

// NewBuildCost sums the build cost of every tile that changed to a paid
// kind. Demolition and changes to free kinds cost nothing.
func NewBuildCost(old, proposed Grid) int64 {
	var cost int64
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			if old[x][y] == proposed[x][y] {
				continue
			}
			cost += int64(proposed.KindAt(x, y).BuildCost())
		}
	}
	return cost
}

// ChangedCells counts tiles that differ between the two grids.
func ChangedCells(old, proposed Grid) int {
	count := 0
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			if old[x][y] != proposed[x][y] {
				count++
			}
		}
	}
	return count
}

// MaxMoneyIncrease bounds a client-reported money jump by one full day of
// theoretical tax income plus a flat allowance for reward payouts.
func MaxMoneyIncrease(taxPerHour int, flatAllowance int64) int64 {
	return int64(taxPerHour)*MaxOfflineHours + flatAllowance
}

// ServerMoney is the authoritative balance after an accepted update: the
// stored balance minus what the changed tiles cost, floored at zero. The
// client-reported balance is validated but never stored.
func ServerMoney(current int64, old, proposed Grid) int64 {
	remaining := current - NewBuildCost(old, proposed)
	if remaining < 0 {
		return 0
	}
	return remaining
}
