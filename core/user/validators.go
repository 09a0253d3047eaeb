package user

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/tmalu/studyhub/core"
)

var (
	eduDomainTag  = "edudomain"
	eduDomainText = "only %s emails are allowed"

	// password policy
	pwdMinLen     = 8
	pwdMinLenText = fmt.Sprintf("password must contain at least %d characters", pwdMinLen)

	pwdNoSpaceText = "password must not contain whitespace"

	pwdNotAllNumText = "password cannot be entirely numeric"

	pwdMaxSim      = .7
	pwdAttrSimText = "password cannot be similar to the email address"
)

func init() {
	_ = core.Validate.RegisterValidation(eduDomainTag, eduDomainValidation)
	core.RegisterCustomTranslation(eduDomainTag, fmt.Sprintf(eduDomainText, core.Conf.AllowedEmailDomain))
}

// eduDomainValidation only allows emails under the configured institutional domain.
func eduDomainValidation(fl validator.FieldLevel) bool {
	return strings.HasSuffix(strings.ToLower(fl.Field().String()), core.Conf.AllowedEmailDomain)
}

// validatePassword enforces the password policy:
// - minimum length
// - no whitespace
// - not entirely numeric
// - not similar to the email address
func validatePassword(pwd, email string) error {
	reportErr := func(text string) error {
		return core.NewValidationError(errors.New(text), core.FieldError{Field: "password", Error: text})
	}

	pwdLen := len(pwd)
	if pwdLen < pwdMinLen {
		return reportErr(pwdMinLenText)
	}

	var digitCount int
	for _, char := range pwd {
		if unicode.IsSpace(char) {
			return reportErr(pwdNoSpaceText)
		}
		if unicode.IsDigit(char) {
			digitCount++
		}
	}
	if digitCount == pwdLen {
		return reportErr(pwdNotAllNumText)
	}

	// compare against the email local part
	local := email
	if idx := strings.Index(email, "@"); idx > 0 {
		local = email[:idx]
	}
	if local != "" {
		pass := strings.ToLower(pwd)
		local = strings.ToLower(local) // the comparison is case-insensitive
		ratio := difflib.NewMatcher(strings.Split(pass, ""), strings.Split(local, "")).QuickRatio()
		if ratio >= pwdMaxSim {
			return reportErr(pwdAttrSimText)
		}
	}
	return nil
}
