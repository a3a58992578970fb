package api

import (
	"budget/config"
)

// SafeErrorMessage hides internal error detail from clients in release mode.
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}
