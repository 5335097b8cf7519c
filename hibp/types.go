package hibp

// Breach is one recorded incident in the HIBP dataset. BreachDate is the
// date the breach occurred; AddedDate is when it entered the dataset and
// is the value the cache freshness logic compares.
type Breach struct {
	Name               string   `json:"Name"`
	Title              string   `json:"Title"`
	Domain             string   `json:"Domain"`
	BreachDate         string   `json:"BreachDate"`
	AddedDate          string   `json:"AddedDate"`
	ModifiedDate       string   `json:"ModifiedDate"`
	PwnCount           int      `json:"PwnCount"`
	Description        string   `json:"Description"`
	LogoPath           string   `json:"LogoPath"`
	DataClasses        []string `json:"DataClasses"`
	IsVerified         bool     `json:"IsVerified"`
	IsFabricated       bool     `json:"IsFabricated"`
	IsSensitive        bool     `json:"IsSensitive"`
	IsRetired          bool     `json:"IsRetired"`
	IsSpamList         bool     `json:"IsSpamList"`
	IsMalware          bool     `json:"IsMalware"`
	IsSubscriptionFree bool     `json:"IsSubscriptionFree"`
}

// Paste is a paste record referencing a searched account.
type Paste struct {
	Source     string `json:"Source"`
	ID         string `json:"Id"`
	Title      string `json:"Title"`
	Date       string `json:"Date"`
	EmailCount int    `json:"EmailCount"`
}

// SubscriptionStatus describes the API key's current subscription.
type SubscriptionStatus struct {
	SubscriptionName                string `json:"SubscriptionName"`
	Description                     string `json:"Description"`
	SubscribedUntil                 string `json:"SubscribedUntil"`
	Rpm                             int    `json:"Rpm"`
	DomainSearchMaxBreachedAccounts int    `json:"DomainSearchMaxBreachedAccounts"`
}
