package config

const (
	DefaultTimeZone = "Asia/Jakarta"
	BaseCurrency    = "IDR"
	BaseUnitMass    = "KG"
	BaseUnitVolume  = "L"
	BatchSize       = 1000

	// Retention job defaults
	DefaultRetentionSchedule = "0 2 * * *" // nightly purge of aged import batches
	DefaultRetentionDays     = 365
)
