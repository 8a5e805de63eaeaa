package rules

import (
	"regexp"
	"strings"
	"time"
)

const (
	MsgInvalidEmail       = "Please enter a valid email"
	MsgInvalidPhone       = "Please enter a valid phone number"
	MsgPhoneDigits        = "only 9-12 digits accepted"
	MsgBirthdayFuture     = "Date of birth cannot be today or in the future"
	MsgExpiryBeforeIssue  = "Expiry must be after issue date"
	MsgBrokerIDRequired   = "Broker ID is required"
	MsgBrokerIDInvalid    = "Broker ID must not contain special characters"
	MsgInvalidCredentials = "Incorrect username or password"
	MsgForgotMismatch     = "Incorrect account or id number/ passport"
	MsgUserIDUppercase    = "User ID must be uppercase"
)

var (
	emailRe        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe        = regexp.MustCompile(`^\d{9,12}$`)
	alphanumericRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	upperUserIDRe  = regexp.MustCompile(`^[A-Z0-9]+$`)
)

// ValidateEmail checks the step-one email field.
func ValidateEmail(s string) error {
	if !emailRe.MatchString(strings.TrimSpace(s)) {
		return violation("email", MsgInvalidEmail)
	}
	return nil
}

// ValidatePhone accepts 9 to 12 digits.
func ValidatePhone(s string) error {
	if !phoneRe.MatchString(strings.TrimSpace(s)) {
		return violation("phone", MsgInvalidPhone)
	}
	return nil
}

// Step1 is the contact step of the open-account wizard.
type Step1 struct {
	Email            string
	Phone            string
	RegistrationType string
}

// Validate returns the step's violations; Continue is enabled only when there are none.
func (s Step1) Validate() []error {
	var errs []error
	if err := ValidateEmail(s.Email); err != nil {
		errs = append(errs, err)
	}
	if err := ValidatePhone(s.Phone); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(s.RegistrationType) == "" {
		errs = append(errs, violation("registrationType", "Registration type is required"))
	}
	return errs
}

// Step2 is the identity step of the open-account wizard.
type Step2 struct {
	FullName  string
	Gender    string // M or F
	Birthday  time.Time
	IDNumber  string
	IssueDate time.Time
	Expiry    time.Time
	FATCA     string // Y or N
}

// Validate checks step two against today.
func (s Step2) Validate(today time.Time) []error {
	var errs []error
	if strings.TrimSpace(s.FullName) == "" {
		errs = append(errs, violation("fullName", "Full name is required"))
	}
	if s.Gender != "M" && s.Gender != "F" {
		errs = append(errs, violation("gender", "Gender is required"))
	}
	if !dayBefore(s.Birthday, today) {
		errs = append(errs, violation("birthday", MsgBirthdayFuture))
	}
	if strings.TrimSpace(s.IDNumber) == "" {
		errs = append(errs, violation("idNumber", "ID number is required"))
	}
	if !dayBefore(s.IssueDate, s.Expiry) {
		errs = append(errs, violation("expiryDate", MsgExpiryBeforeIssue))
	}
	if s.FATCA != "Y" && s.FATCA != "N" {
		errs = append(errs, violation("fatca", "FATCA declaration is required"))
	}
	return errs
}

// Step3 is the service step of the open-account wizard.
type Step3 struct {
	AccountTypes []string
	BrokerCare   bool
	BrokerID     string
}

// Validate returns the step's violations; Finish is enabled only when there are none.
func (s Step3) Validate() []error {
	var errs []error
	if len(s.AccountTypes) == 0 {
		errs = append(errs, violation("accountType", "Select at least one account type"))
	}
	if s.BrokerCare {
		id := strings.TrimSpace(s.BrokerID)
		switch {
		case id == "":
			errs = append(errs, violation("brokerId", MsgBrokerIDRequired))
		case !alphanumericRe.MatchString(id):
			errs = append(errs, violation("brokerId", MsgBrokerIDInvalid))
		}
	}
	return errs
}

// ValidateForgotPassword requires an uppercase user ID and a non-empty ID or passport number.
func ValidateForgotPassword(userID, idNumber string) error {
	if !upperUserIDRe.MatchString(userID) {
		return violation("userId", MsgUserIDUppercase)
	}
	if strings.TrimSpace(idNumber) == "" {
		return violation("identifier", MsgForgotMismatch)
	}
	return nil
}

func dayBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC).Before(time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC))
}
