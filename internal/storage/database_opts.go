package storage

type DatabaseOpt func(*Database)

// WithVerbose logs every statement gorm runs.
func WithVerbose(verbose bool) DatabaseOpt {
	return func(d *Database) {
		d.verbose = verbose
	}
}
