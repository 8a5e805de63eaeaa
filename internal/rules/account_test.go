package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(errs []error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

func TestValidateEmail(t *testing.T) {
	for _, ok := range []string{"a@b.vn", "linh.dtt@navisoft.com.vn", " user@mail.com "} {
		assert.NoError(t, ValidateEmail(ok), ok)
	}
	for _, bad := range []string{"", "plainaddress", "a@b", "a b@c.com", "@mail.com"} {
		err := ValidateEmail(bad)
		require.Error(t, err, bad)
		assert.Equal(t, MsgInvalidEmail, err.Error())
	}
}

func TestValidatePhone(t *testing.T) {
	for _, ok := range []string{"901234567", "0901234567", "849012345678"} {
		assert.NoError(t, ValidatePhone(ok), ok)
	}
	for _, bad := range []string{"12345678", "8490123456789", "09012a4567", "+84901234567", ""} {
		assert.Error(t, ValidatePhone(bad), bad)
	}
}

func TestStep1(t *testing.T) {
	assert.Empty(t, Step1{Email: "a@b.vn", Phone: "0901234567", RegistrationType: "Online"}.Validate())

	errs := Step1{Email: "nope", Phone: "123"}.Validate()
	assert.Equal(t, []string{MsgInvalidEmail, MsgInvalidPhone, "Registration type is required"}, messages(errs))
}

func TestStep2(t *testing.T) {
	today := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	valid := Step2{
		FullName:  "Nguyen Van A",
		Gender:    "M",
		Birthday:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		IDNumber:  "079090000001",
		IssueDate: time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
		Expiry:    time.Date(2036, 5, 1, 0, 0, 0, 0, time.UTC),
		FATCA:     "N",
	}
	assert.Empty(t, valid.Validate(today))

	bornToday := valid
	bornToday.Birthday = today
	assert.Equal(t, []string{MsgBirthdayFuture}, messages(bornToday.Validate(today)))

	bornTomorrow := valid
	bornTomorrow.Birthday = today.AddDate(0, 0, 1)
	assert.Equal(t, []string{MsgBirthdayFuture}, messages(bornTomorrow.Validate(today)))

	expiredFirst := valid
	expiredFirst.Expiry = valid.IssueDate
	assert.Equal(t, []string{MsgExpiryBeforeIssue}, messages(expiredFirst.Validate(today)))

	noGender := valid
	noGender.Gender = ""
	noGender.FATCA = "maybe"
	assert.Len(t, noGender.Validate(today), 2)
}

func TestStep3_BrokerCare(t *testing.T) {
	base := Step3{AccountTypes: []string{"Derivative"}}
	assert.Empty(t, base.Validate())

	withCare := base
	withCare.BrokerCare = true
	assert.Equal(t, []string{MsgBrokerIDRequired}, messages(withCare.Validate()))

	withCare.BrokerID = "BR@01!"
	assert.Equal(t, []string{MsgBrokerIDInvalid}, messages(withCare.Validate()))

	withCare.BrokerID = "BR001"
	assert.Empty(t, withCare.Validate())

	assert.Len(t, Step3{}.Validate(), 1)
}

func TestValidateForgotPassword(t *testing.T) {
	assert.NoError(t, ValidateForgotPassword("C040899D1", "079090000001"))

	err := ValidateForgotPassword("c040899d1", "079090000001")
	require.Error(t, err)
	assert.Equal(t, MsgUserIDUppercase, err.Error())

	err = ValidateForgotPassword("C040899D1", " ")
	require.Error(t, err)
	assert.Equal(t, MsgForgotMismatch, err.Error())
}
