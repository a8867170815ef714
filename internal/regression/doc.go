// Package regression fits per-position models of draft outcome and career value.
//
// Every variable is standardized to zero mean and unit sample deviation, and variables
// where a smaller value is better (40yd, 3Cone, Shuttle, Pick) are negated so that a
// positive coefficient always means "better measurement, better outcome". Each group is
// split at random into train and test rows with a seeded generator, a ridge regression
// and an RBF support-vector regression are fitted on the train rows, and both are scored
// by R² on the test rows.
package regression
