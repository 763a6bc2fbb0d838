// Package routing decides which navigation region the current session state
// permits. The gate is a pure function so both client shells can share it.
package routing

// Region is one of the three reachable navigation regions.
type Region int

const (
	// RegionAuth holds the login and signup screens.
	RegionAuth Region = iota
	// RegionOnboarding holds the onboarding wizard.
	RegionOnboarding
	// RegionMain holds the main app (chat, dashboard, goals, ...).
	RegionMain
)

func (r Region) String() string {
	switch r {
	case RegionAuth:
		return "auth"
	case RegionOnboarding:
		return "onboarding"
	case RegionMain:
		return "main"
	default:
		return "unknown"
	}
}

// Screen names the highest-priority entry point of each region.
type Screen string

const (
	ScreenLogin             Screen = "login"
	ScreenOnboardingWelcome Screen = "onboarding_welcome"
	ScreenChat              Screen = "chat"
)

// Resolve maps session state to the single permitted region. Login or signup
// moves auth → onboarding; successful final onboarding submission moves
// onboarding → main; logout returns any state to auth.
func Resolve(hasIdentity, isOnboarded bool) Region {
	switch {
	case !hasIdentity:
		return RegionAuth
	case !isOnboarded:
		return RegionOnboarding
	default:
		return RegionMain
	}
}

// Entry returns the entry screen a deep link into a forbidden region is
// redirected to.
func Entry(region Region) Screen {
	switch region {
	case RegionAuth:
		return ScreenLogin
	case RegionOnboarding:
		return ScreenOnboardingWelcome
	default:
		return ScreenChat
	}
}

// Redirect clamps a requested region to the permitted one. It returns the
// requested region unchanged when allowed, otherwise the permitted region's
// entry screen applies.
func Redirect(requested, permitted Region) (Region, Screen) {
	if requested == permitted {
		return requested, ""
	}
	return permitted, Entry(permitted)
}
