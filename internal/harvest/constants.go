package harvest

const (
	MinBaseYield = 800
	MaxBaseYield = 1500

	// DefaultCrowdCap is the harvester count at which the crowd bonus drops back to zero
	DefaultCrowdCap = 20

	// DefaultPerActorBonus is the crowd bonus fraction contributed by each harvester
	DefaultPerActorBonus = 0.05

	// DefaultRecentCacheSize bounds the in-process duplicate-harvest cache
	DefaultRecentCacheSize = 4096

	// bucketIDLayout encodes the UTC date and the hour the window opened (00 or 12)
	bucketIDLayout = "2006-01-02T15"
)

// Log messages
const (
	LogMsgHarvestRequested = "Harvest requested"
	LogMsgHarvestRejected  = "Harvest rejected"
	LogMsgHarvestSucceeded = "Harvest successful"
	LogMsgBonusLookupFail  = "Failed to load player bonuses, harvesting without bonuses"
	LogMsgCrowdLookupFail  = "Failed to count harvesters, skipping crowd bonus"
)
