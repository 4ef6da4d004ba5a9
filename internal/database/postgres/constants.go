package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Eligibility columns the job stores accept, keyed by domain field name
var (
	factoryColumns = map[string]string{
		"id":              "id",
		"owner_id":        "owner_id",
		"x":               "x",
		"y":               "y",
		"level":           "level",
		"slots":           "slots",
		"used_slots":      "used_slots",
		"last_slot_regen": "last_slot_regen",
	}
)

// Resource balance columns on players, keyed by resource kind
var resourceColumns = map[string]string{
	"metal":  "metal",
	"energy": "energy",
}
