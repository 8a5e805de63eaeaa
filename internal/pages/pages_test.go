package pages

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/brokercheck/internal/browser/browsertest"
	"github.com/bobmcallan/brokercheck/internal/common"
	"github.com/bobmcallan/brokercheck/internal/reconcile"
	"github.com/bobmcallan/brokercheck/internal/rules"
	"github.com/bobmcallan/brokercheck/internal/screens"
	"github.com/bobmcallan/brokercheck/internal/web"
)

func tid(id string) string { return web.TestID(id) }

func client(p *browsertest.Page) *web.Client {
	return web.NewClient(p, common.WebConfig{BaseURL: "http://web.test", Username: "test2", Password: "123456"}, nil)
}

func comparator() *reconcile.Comparator {
	return reconcile.New("suite", true, nil)
}

func failed(cmp *reconcile.Comparator) []string {
	var out []string
	for _, c := range cmp.Checks() {
		if !c.Passed {
			out = append(out, c.Name)
		}
	}
	for _, c := range cmp.Comparisons() {
		if !c.Matched {
			out = append(out, c.Field)
		}
	}
	return out
}

func loginFormPage() *browsertest.Page {
	p := browsertest.New()
	p.Set(tid(loginUsername), browsertest.Element{})
	p.Set(tid(loginPassword), browsertest.Element{Attrs: map[string]string{"type": "password"}})
	p.Set(tid(loginSubmit), browsertest.Element{})
	p.Set(tid(loginToggle), browsertest.Element{})
	return p
}

func flipPasswordType(p *browsertest.Page) {
	el, _ := p.Element(tid(loginPassword))
	next := "text"
	if el.Attrs["type"] == "text" {
		next = "password"
	}
	p.Set(tid(loginPassword), browsertest.Element{Value: el.Value, Attrs: map[string]string{"type": next}})
}

func TestLoginPage_PasswordToggle(t *testing.T) {
	p := loginFormPage().OnClick(tid(loginToggle), flipPasswordType)
	cmp := comparator()

	require.NoError(t, NewLoginPage(client(p)).VerifyPasswordToggle(context.Background(), cmp, 3))
	assert.Empty(t, failed(cmp))
	assert.Len(t, cmp.Checks(), 4)

	el, _ := p.Element(tid(loginPassword))
	assert.Equal(t, "text", el.Attrs["type"], "odd number of clicks leaves the password visible")
}

func TestLoginPage_BrokenToggleFails(t *testing.T) {
	cmp := comparator()
	require.NoError(t, NewLoginPage(client(loginFormPage())).VerifyPasswordToggle(context.Background(), cmp, 2))
	// the type never changes, so only the second click lands back on "password"
	assert.Equal(t, []string{"password toggle"}, failed(cmp))
}

func TestLoginPage_SubmitAndErrors(t *testing.T) {
	p := loginFormPage()
	p.Set(tid(loginSubmit), browsertest.Element{Disabled: true})
	cmp := comparator()
	lp := NewLoginPage(client(p))

	require.NoError(t, lp.VerifySubmitDisabledWhenBlank(context.Background(), cmp))
	assert.Empty(t, failed(cmp))

	p.Set(tid(loginSubmit), browsertest.Element{})
	p.OnClick(tid(loginSubmit), func(p *browsertest.Page) { p.SetBodyText(rules.MsgInvalidCredentials) })
	require.NoError(t, lp.VerifyRejected(context.Background(), cmp, "WrongUser", "wrongpass"))
	assert.Empty(t, failed(cmp))
	assert.Equal(t, "WrongUser", p.Filled(tid(loginUsername)))
}

func TestLoginPage_SubmitWithEnter(t *testing.T) {
	p := loginFormPage()
	p.OnClick(tid(loginPassword)+":enter", func(p *browsertest.Page) { p.SetURL("http://web.test/home") })

	lp := NewLoginPage(client(p))
	require.NoError(t, lp.FillCredentials(context.Background(), "linhdtt01", "123456"))
	require.NoError(t, lp.SubmitWithEnter(context.Background()))
	assert.Equal(t, "http://web.test/home", p.URL())
}

func TestLoginPage_Links(t *testing.T) {
	p := loginFormPage()
	for _, l := range LoginLinks {
		path := l.Path
		p.Set(tid(l.ID), browsertest.Element{})
		p.OnClick(tid(l.ID), func(p *browsertest.Page) { p.SetURL("http://web.test/" + path) })
	}
	p.Remove(tid("login-link-terms"))
	cmp := comparator()

	require.NoError(t, NewLoginPage(client(p)).VerifyLinks(context.Background(), cmp))
	assert.Equal(t, []string{"login-link-terms"}, failed(cmp))
	assert.Len(t, p.Visited(), len(LoginLinks))
}

func TestLogoutSuite(t *testing.T) {
	p := browsertest.New()
	p.Set(tid("login-input-username"), browsertest.Element{})
	p.Set(tid("login-input-password"), browsertest.Element{})
	p.Set(tid("login-action-submit"), browsertest.Element{})
	p.Set(tid(userMenu), browsertest.Element{})
	p.Set(tid(logoutTrigger), browsertest.Element{})
	p.Set(tid(logoutStay), browsertest.Element{})
	p.Set(tid(logoutConfirm), browsertest.Element{})
	p.OnClick(tid(logoutTrigger), func(p *browsertest.Page) { p.Set(logoutModalSelector, browsertest.Element{}) })
	p.OnClick(tid(logoutStay), func(p *browsertest.Page) { p.Remove(logoutModalSelector) })
	p.OnClick(tid(logoutConfirm), func(p *browsertest.Page) {
		p.Remove(logoutModalSelector).Remove(tid(userMenu)).Set(tid(loginForm), browsertest.Element{})
	})

	cmp := comparator()
	_, err := LogoutSuite().Run(context.Background(), &screens.Session{Web: client(p), Compare: cmp}, screens.ScenarioFull)
	require.NoError(t, err)
	assert.Empty(t, failed(cmp))
	assert.Len(t, cmp.Checks(), 4)
}

func TestLogoutModal_StayRequiresOpen(t *testing.T) {
	m := NewLogoutModal(client(browsertest.New()))
	assert.EqualError(t, m.Stay(context.Background()), "modal is closed, not open")
}

func TestForgotPassword_RejectsLowercaseUserID(t *testing.T) {
	p := browsertest.New()
	p.Set(tid(forgotUserID), browsertest.Element{})
	p.Set(tid(forgotIdentifier), browsertest.Element{})
	p.Set(tid(forgotConfirm), browsertest.Element{})
	p.OnClick(tid(forgotConfirm), func(p *browsertest.Page) { p.SetText(tid(errorBanner), rules.MsgForgotMismatch) })

	cmp := comparator()
	fp := NewForgotPasswordPage(client(p))
	require.NoError(t, fp.VerifyRequest(context.Background(), cmp, "c040899d1", "2748347223"))
	assert.Empty(t, failed(cmp))

	// blank fields leave the button enabled here, which the check must catch
	require.NoError(t, fp.VerifyConfirmDisabledWhenBlank(context.Background(), cmp))
	assert.Equal(t, []string{"confirm disabled when blank"}, failed(cmp))
}

func openAccountStep1Page() *browsertest.Page {
	p := browsertest.New()
	p.Set(tid(openEmail), browsertest.Element{})
	p.Set(tid(openPhone), browsertest.Element{})
	p.Set(tid(openRegistrationType), browsertest.Element{Options: rules.RegistrationTypes})
	return p
}

func TestOpenAccount_Step1ButtonFollowsRules(t *testing.T) {
	p := openAccountStep1Page()
	p.Set(tid(openContinue1), browsertest.Element{Disabled: true})
	p.SetBodyText(rules.MsgInvalidEmail + " " + rules.MsgInvalidPhone)
	cmp := comparator()
	oa := NewOpenAccountPage(client(p))

	bad := rules.Step1{Email: "userdomain.com", Phone: "91234abcd", RegistrationType: "Online"}
	require.NoError(t, oa.VerifyStep1(context.Background(), cmp, bad))
	assert.Empty(t, failed(cmp))
	assert.Equal(t, "Online", p.Selected(tid(openRegistrationType)))

	// a valid step with the button still disabled is a failure
	good := rules.Step1{Email: "phuongta.it1@gmail.com", Phone: "0333129782", RegistrationType: "Online"}
	require.NoError(t, oa.VerifyStep1(context.Background(), cmp, good))
	assert.Equal(t, []string{"step 1 button state"}, failed(cmp))
}

func TestOpenAccount_Step3BrokerID(t *testing.T) {
	p := browsertest.New()
	p.Set(tid(openAccountType), browsertest.Element{})
	p.Set(radio(openBrokerCare, "Yes"), browsertest.Element{})
	p.Set(radio(openBrokerCare, "No"), browsertest.Element{})
	p.Set(tid(openBrokerID), browsertest.Element{})
	p.Set(tid(openFinish), browsertest.Element{Disabled: true})
	p.SetBodyText(rules.MsgBrokerIDInvalid)
	cmp := comparator()

	s := rules.Step3{AccountTypes: rules.OpenAccountTypes, BrokerCare: true, BrokerID: "AB@12"}
	require.NoError(t, NewOpenAccountPage(client(p)).VerifyStep3(context.Background(), cmp, s))
	assert.Empty(t, failed(cmp))
	assert.Equal(t, "AB@12", p.Filled(tid(openBrokerID)))
	assert.Contains(t, p.Clicks(), `[data-testid="open-account-input-brokercare"][value="Yes"]`)
}

func TestOpenAccount_Step2Dates(t *testing.T) {
	p := browsertest.New()
	for _, id := range []string{openFullName, openBirthday, openIDNumber, openIssuePlace, openIssueDate, openExpiryDate, openPermAddress} {
		p.Set(tid(id), browsertest.Element{})
	}
	p.Set(radio(openGender, "F"), browsertest.Element{})
	p.Set(radio(openFATCA, "N"), browsertest.Element{})

	birthday := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, NewOpenAccountPage(client(p)).FillStep2(context.Background(), rules.Step2{FullName: "Tran Thi B", Gender: "F", Birthday: birthday, FATCA: "N"}))
	assert.Equal(t, "02/04/1990", p.Filled(tid(openBirthday)))
	assert.Equal(t, "", p.Filled(tid(openIssueDate)))
}

func orderPage(footerVol string) *browsertest.Page {
	p := browsertest.New()
	rows := []struct{ vol, matched, unmatched, value, side, symbol string }{
		{"1,000", "800", "200", "64,000,000", "Buy", "VNM"},
		{"500", "500", "0", "40,000,000", "Sell", "VNM"},
	}
	for i, r := range rows {
		p.SetText(tid(web.Indexed("orderhistory-col-vol", i)), r.vol)
		p.SetText(tid(web.Indexed("orderhistory-col-matchedvol", i)), r.matched)
		p.SetText(tid(web.Indexed("orderhistory-col-unmatchedvol", i)), r.unmatched)
		p.SetText(tid(web.Indexed("orderhistory-col-matchedvalue", i)), r.value)
		p.SetText(tid(web.Indexed("orderhistory-badge-side", i)), r.side)
		p.SetText(tid(web.Indexed("orderhistory-col-symbol", i)), r.symbol)
	}
	p.SetCount(web.TestIDPrefix("orderhistory-col-vol-"), len(rows))
	p.SetText(tid("orderhistory-metric-totalvol"), footerVol)
	p.SetText(tid("orderhistory-metric-totalbuy"), "1,000")
	p.SetText(tid("orderhistory-metric-totalsell"), "500")
	p.SetText(tid("orderhistory-metric-totalmatchedvol"), "1,300")
	p.SetText(tid("orderhistory-metric-totalunmatchedvol"), "200")
	p.SetText(tid("orderhistory-metric-totalmatchedvalue"), "104,000,000")
	return p
}

func TestOrderHistory_Footer(t *testing.T) {
	cmp := comparator()
	oh := NewOrderHistoryPage(client(orderPage("1,500")))

	assert.Equal(t, OrderFooter{Volume: 1500, BuyVolume: 1000, SellVolume: 500, MatchedVolume: 1300, UnmatchedVol: 200, MatchedValue: 104000000},
		oh.ExpectedFooter(context.Background()))

	oh.VerifyFooter(context.Background(), cmp, reconcile.DefaultTolerance)
	assert.Empty(t, failed(cmp))
	assert.Len(t, cmp.Comparisons(), 6)

	cmp = comparator()
	NewOrderHistoryPage(client(orderPage("1,499"))).VerifyFooter(context.Background(), cmp, reconcile.DefaultTolerance)
	assert.Equal(t, []string{"total volume"}, failed(cmp))
}

func TestOrderHistory_SymbolSearch(t *testing.T) {
	p := orderPage("1,500")
	p.Set(tid(orderSymbol), browsertest.Element{})
	p.Set(tid(orderQuery), browsertest.Element{})
	cmp := comparator()
	oh := NewOrderHistoryPage(client(p))

	require.NoError(t, oh.VerifySymbolSearch(context.Background(), cmp, "VNM"))
	assert.Empty(t, failed(cmp))
	assert.Equal(t, "VNM", p.Filled(tid(orderSymbol)))

	p.OnClick(tid(orderQuery), func(p *browsertest.Page) {
		p.SetCount(web.TestIDPrefix("orderhistory-col-vol-"), 0)
		p.SetBodyText(rules.MsgNoRecords)
	})
	require.NoError(t, oh.VerifySymbolSearch(context.Background(), cmp, "BBB"))
	assert.Empty(t, failed(cmp))
}

func TestDateFilter_VerifyRange(t *testing.T) {
	p := browsertest.New()
	p.Set(tid(orderFromDate), browsertest.Element{})
	p.Set(tid(orderToDate), browsertest.Element{})
	p.Set(tid(orderQuery), browsertest.Element{})
	p.SetBodyText(rules.MsgToBeforeFrom)
	w := client(p)
	f := NewOrderHistoryPage(w).dates()

	cmp := comparator()
	require.NoError(t, f.VerifyRange(context.Background(), w, cmp, "15/06/2025", "10/06/2025"))
	assert.Empty(t, failed(cmp))
	assert.Equal(t, "10/06/2025", p.Filled(tid(orderToDate)))

	// the stale message makes a valid range fail
	require.NoError(t, f.VerifyRange(context.Background(), w, cmp, "01/03/2025", "31/05/2025"))
	assert.Equal(t, []string{"range 01/03/2025..31/05/2025"}, failed(cmp))
}

func TestVerifyOptions(t *testing.T) {
	p := browsertest.New()
	p.Set(tid(orderSide), browsertest.Element{Options: []string{"All", "Buy", "Sell"}})
	p.Set(tid(orderStatus), browsertest.Element{Options: []string{"All", "Pending"}})
	cmp := comparator()
	w := client(p)

	verifyOptions(context.Background(), w, cmp, "side", orderSide, rules.OrderSides)
	verifyOptions(context.Background(), w, cmp, "status", orderStatus, rules.OrderStatuses)
	assert.Equal(t, []string{"status options"}, failed(cmp))
}

func TestCashTransferHistory_FilterAndDefaults(t *testing.T) {
	p := browsertest.New()
	p.Set(tid(cashHistoryType), browsertest.Element{Value: "All", Options: rules.CashTransferTypes})
	p.Set(tid(cashHistoryStatus), browsertest.Element{Value: "All", Options: rules.HistoryStatuses})
	p.Set(tid(cashHistoryQuery), browsertest.Element{})
	p.SetText(cashHistoryCell(1, "transtype"), "To bank")
	p.SetText(cashHistoryCell(1, "status"), "Completed")
	cmp := comparator()
	ch := NewCashTransferHistoryPage(client(p))

	ch.VerifyDefaults(context.Background(), cmp)
	require.NoError(t, ch.VerifyFilter(context.Background(), cmp, "To bank", "Completed"))
	assert.Empty(t, failed(cmp))
	assert.Equal(t, "To bank", p.Selected(tid(cashHistoryType)))

	require.NoError(t, ch.VerifyFilter(context.Background(), cmp, "VSD Deposit", "All"))
	assert.Equal(t, []string{"filter type VSD Deposit"}, failed(cmp))

	row := ch.Row(context.Background(), 1)
	assert.Equal(t, "To bank", row["transtype"])
	assert.Equal(t, "", row["remark"])
}

// transferPage accepts amounts in (50,000, 10,000,000] with a short description by
// opening the modal and otherwise shows the matching message.
func transferPage(ids FormIDs, available string) *browsertest.Page {
	p := browsertest.New()
	p.SetText(tid(ids.Available), available)
	p.Set(tid(ids.Amount), browsertest.Element{})
	p.Set(tid(ids.Content), browsertest.Element{})
	p.Set(tid(ids.Reset), browsertest.Element{})
	p.Set(tid(ids.Submit), browsertest.Element{})
	p.Set(tid(ids.ModalCancel), browsertest.Element{})
	p.OnClick(tid(ids.Submit), func(p *browsertest.Page) {
		if len(p.Filled(tid(ids.Content))) > rules.MaxContentLength {
			p.SetBodyText(rules.MsgContentTooLong)
			return
		}
		amount := decimal.RequireFromString(p.Filled(tid(ids.Amount)))
		if amount.GreaterThan(decimal.NewFromInt(50000)) && amount.LessThanOrEqual(decimal.NewFromInt(10000000)) {
			p.Set(tid(ids.Modal), browsertest.Element{})
			return
		}
		p.SetBodyText(rules.MsgVSDAmount)
	})
	p.OnClick(tid(ids.ModalCancel), func(p *browsertest.Page) { p.Remove(tid(ids.Modal)) })
	p.OnClick(tid(ids.Reset), func(p *browsertest.Page) { p.SetBodyText("") })
	return p
}

var businessHours = time.Date(2025, 6, 18, 10, 0, 0, 0, common.DefaultLocation)

func TestTransferForm_AcceptedAmountOpensModal(t *testing.T) {
	p := transferPage(VSDWithdrawForm, "10,000,000")
	cmp := comparator()
	f := NewTransferForm(client(p), VSDWithdrawForm)

	available, ok := f.Available(context.Background())
	require.True(t, ok)
	assert.True(t, available.Equal(decimal.NewFromInt(10000000)))

	require.NoError(t, f.VerifyRequest(context.Background(), cmp, decimal.NewFromInt(100000), "brokercheck", businessHours))
	assert.Empty(t, failed(cmp))
	assert.Equal(t, rules.ModalCancelled, f.modal.State())
	assert.Equal(t, "100000", p.Filled(tid(VSDWithdrawForm.Amount)))
}

func TestTransferForm_RejectedAmountShowsMessage(t *testing.T) {
	p := transferPage(VSDDepositForm, "10,000,000")
	cmp := comparator()
	f := NewTransferForm(client(p), VSDDepositForm)

	require.NoError(t, f.VerifyRequest(context.Background(), cmp, decimal.NewFromInt(20000), "brokercheck", businessHours))
	assert.Empty(t, failed(cmp))
	assert.Equal(t, rules.ModalClosed, f.modal.State())
}

func TestTransferForm_AfterHoursNeedsMessage(t *testing.T) {
	p := transferPage(BankTransferForm, "10,000,000")
	cmp := comparator()
	f := NewTransferForm(client(p), BankTransferForm)

	// the page accepts the amount, but at 20:00 the modal must stay closed
	evening := time.Date(2025, 6, 18, 20, 0, 0, 0, common.DefaultLocation)
	require.NoError(t, f.VerifyRequest(context.Background(), cmp, decimal.NewFromInt(100000), "brokercheck", evening))
	assert.ElementsMatch(t, []string{"bank-transfer amount 100000 blocked", "time message"}, failed(cmp))
}

func TestSuite_RunsThroughScreenRunner(t *testing.T) {
	p := transferPage(VSDWithdrawForm, "10,000,000")
	p.Set(tid("login-input-username"), browsertest.Element{})
	p.Set(tid("login-input-password"), browsertest.Element{})
	p.Set(tid("login-action-submit"), browsertest.Element{})
	browser := browsertest.NewBrowser(func() *browsertest.Page { return p })

	suites, err := LookupSuites(func() time.Time { return businessHours }, "vsd-withdraw")
	require.NoError(t, err)

	r := &screens.Runner{Browser: browser, Web: common.WebConfig{BaseURL: "http://web.test"}, Enforce: true}
	reports, err := r.Run(context.Background(), suites, screens.ScenarioFull)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.True(t, report.Passed(), "%+v", report.Checks)
	assert.Contains(t, p.Visited(), "http://web.test/cash-vsd-withdraw")
	assert.True(t, p.Closed())
}

func TestSuites_Registry(t *testing.T) {
	names := SuiteNames()
	assert.Equal(t, []string{"login", "logout", "forgot-password", "open-account", "order-history",
		"cash-transfer-history", "vsd-withdraw", "vsd-deposit", "bank-transfer"}, names)

	_, err := LookupSuites(nil, "nope")
	assert.EqualError(t, err, `unknown suite "nope"`)

	_, err = LoginSuite().Run(context.Background(), &screens.Session{Compare: comparator()}, screens.ScenarioFull)
	assert.EqualError(t, err, "suite login needs a browser page")
}
