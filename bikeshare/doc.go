// Package bikeshare loads bike-sharing station records from the JSON feed
// published by the sharing operator.
package bikeshare
