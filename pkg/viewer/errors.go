package viewer

import "orthoslice/internal/models"

// Error taxonomy shared with the lower layers so callers can test with
// errors.Is without importing internal packages.
var (
	ErrConfiguration     = models.ErrConfiguration
	ErrUnsupportedFormat = models.ErrUnsupportedFormat
	ErrGraphicsInit      = models.ErrGraphicsInit
)
