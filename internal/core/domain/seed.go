package domain

// SeedPassword is the password given to every demonstration credential.
const SeedPassword = "passwerd"

// SeedData returns the demonstration dataset written by a store reset.
// Each call builds fresh entities.
func SeedData() *Snapshot {
	redditDude := NewCredential("Reddit", "www.reddit.com", "dudeguy", SeedPassword, "2023-02-05")
	redditBud := NewCredential("Reddit", "www.reddit.com", "budpal", SeedPassword, "2022-10-17")
	facebook := NewTwoFactorCredential("Facebook", "www.facebook.com", "budpal", SeedPassword,
		"2023-02-05", "phone alert", "confirmation")
	bank1 := NewTwoFactorCredential("Bank 1", "www.bank1.com", "dudeguy", SeedPassword,
		"2023-02-05", "phone app", "biometric")
	bank2 := NewTwoFactorCredential("Bank 2", "www.bank2.com", "dudeguy", SeedPassword,
		"2023-02-05", "phone app", "biometric")

	return &Snapshot{
		Credentials: []*Credential{redditDude, redditBud, facebook, bank1, bank2},
		Groups: []*Group{
			NewGroup(AllGroupName, 10, redditDude, redditBud, facebook, bank1, bank2),
			NewGroup("Social", 6, redditDude, redditBud, facebook),
			NewGroup("Financial", 10, bank1, bank2),
		},
	}
}
