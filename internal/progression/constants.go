package progression

// Experience curve constants
const (
	// BaseExpToNext is the experience required to leave level 1
	BaseExpToNext = 100.0

	// DefaultGrowth is the per-level growth factor of the player curve: floor(100 * growth^(level-1))
	DefaultGrowth = 1.5

	// DefaultStatPointsPerLevel is the stat point grant for each level gained
	DefaultStatPointsPerLevel = 5
)

// Starting player values
const (
	DefaultPlayerName = "Sung Jin-Woo"
	StartingLevel     = 1
	StartingStatValue = 10
)
