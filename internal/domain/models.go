package domain

// All returns every persisted model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{&Member{}, &Application{}, &Invite{}, &Referral{}}
}
