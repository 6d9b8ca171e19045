package password

import (
	"github.com/Picocrypt/zxcvbn-go"

	vaulterrors "keeptower/internal/errors"
)

// ScreenResult is the outcome of screening a candidate password. Common is
// the blacklist verdict and is what gates enrollment; Strength is a 0-4
// zxcvbn score for callers that display a strength meter. Strength never
// overrides Common.
type ScreenResult struct {
	Common   bool
	Strength int
}

// ScreenPassword runs the common-password check and the zxcvbn strength
// estimate over pw in one call.
func ScreenPassword(pw string) ScreenResult {
	res := ScreenResult{Common: IsCommonPassword(pw)}
	if pw != "" {
		res.Strength = zxcvbn.PasswordStrength(pw, nil).Score
	}
	return res
}

// Validate rejects a candidate password that hits the common-password
// blacklist, returning a KindWeakPassword error the enrollment flow surfaces
// to the user. An empty password is rejected as KindInvalidData.
func Validate(pw string) error {
	if pw == "" {
		return vaulterrors.New(vaulterrors.KindInvalidData, "validate_password", nil)
	}
	if IsCommonPassword(pw) {
		return vaulterrors.New(vaulterrors.KindWeakPassword, "validate_password", nil)
	}
	return nil
}
