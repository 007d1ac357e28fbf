package generator

// Config drives the synthetic network generator.
type Config struct {
	NumUsers          int
	ContactsPerUser   int
	AcquaintanceRatio float64 // chance a contact knows another contact of the same owner
	NumTeams          int
	TeamSize          int
	ShareChance       float64 // chance a member shares a given contact with a team
	Seed              int64
}

// DefaultConfig returns a small network suitable for demos.
func DefaultConfig() Config {
	return Config{
		NumUsers:          50,
		ContactsPerUser:   40,
		AcquaintanceRatio: 0.3,
		NumTeams:          8,
		TeamSize:          6,
		ShareChance:       0.2,
		Seed:              42,
	}
}
