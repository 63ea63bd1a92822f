package api

import (
	"github.com/normie1221/Sanchay/config"
)

// SafeErrorMessage hides internal error details from clients outside of
// debug mode.
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}
