// Package combine provides the types shared by every stage of the combine pipeline.
//
// A Record is one row of a yearly combine results table. It starts with the raw text
// fields scraped from the page and is later augmented with derived values: the overall
// draft pick, the height in centimeters and the five-year Approximate Value sum. Missing
// values are nil pointers so that cleaning can tell "absent" apart from zero.
package combine
