package domain

import "time"

// Map geometry
const (
	DefaultMapWidth  = 100
	DefaultMapHeight = 100
)

// Reset windows
const (
	// BucketLength is the length of one harvest reset window
	BucketLength = 12 * time.Hour

	// DefaultBucketSplitX is the first column that belongs to the evening bucket
	DefaultBucketSplitX = 50
)

// Job names
const (
	JobNameFactorySlotRegen = "factory_slot_regeneration"
	JobNameFlagBot          = "flag_bot_manager"
)
