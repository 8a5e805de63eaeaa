package screens

import (
	"fmt"
	"sort"
)

// All builds every screen validator in display order.
func All(env *Env) []Screen {
	return []Screen{
		BankAccount(env),
		UserInfo(env),
		Assets(env),
		AssetSummary(env),
		Portfolio(env),
		PLStatement(env),
		CashLimit(env),
		CashStatement(env),
		DepositHistory(env),
		WithdrawalHistory(env),
		BankTransferHistory(env),
		Events(env),
	}
}

// Names lists the screen names, sorted.
func Names() []string {
	var names []string
	for _, s := range All(&Env{}) {
		names = append(names, s.Describe().Name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named screens from env. An unknown name is an error.
func Lookup(env *Env, names ...string) ([]Screen, error) {
	byName := make(map[string]Screen)
	for _, s := range All(env) {
		byName[s.Describe().Name] = s
	}
	out := make([]Screen, 0, len(names))
	for _, n := range names {
		s, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("unknown screen %q", n)
		}
		out = append(out, s)
	}
	return out, nil
}
