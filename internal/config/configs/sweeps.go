package configs

import "time"

// Sweeps configures the periodic enforcement scheduler. The budget and
// dayparting sweeps and the draft activation sweep run on fixed intervals;
// the daily and monthly resets fire at local midnight in Timezone, the
// monthly one only on the first of the month.
type Sweeps struct {
	// Enabled turns the in-process scheduler on. Disable it when sweeps are
	// triggered externally through the HTTP endpoints or the sweep command.
	Enabled bool `env:"ENABLED" envDefault:"true"`

	BudgetInterval     time.Duration `env:"BUDGET_INTERVAL" envDefault:"5m"`
	DaypartingInterval time.Duration `env:"DAYPARTING_INTERVAL" envDefault:"5m"`
	ActivationInterval time.Duration `env:"ACTIVATION_INTERVAL" envDefault:"10m"`

	// Timezone is the IANA zone whose midnight triggers the resets.
	Timezone string `env:"TIMEZONE" envDefault:"UTC"`
}
