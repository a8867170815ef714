// Package careervalue computes each player's early-career value from their profile page.
//
// Career value is the sum of the "AV" (Approximate Value) column over the first five
// seasons listed in the player's career statistics table. Failures are never returned as
// errors: a Result carries either the value or the kind of miss, so one bad profile page
// cannot abort a batch and callers can still tell a missing link from a broken page.
package careervalue
