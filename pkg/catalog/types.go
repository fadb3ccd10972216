package catalog

import "github.com/trayshop/storefront/pkg/apiclient"

// Ritual is a ceremony on the lunar or solar calendar with its offering
// checklist.
type Ritual struct {
	ID             apiclient.ID `json:"id,omitempty"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	Meaning        string       `json:"meaning,omitempty"`
	DateLunar      string       `json:"dateLunar,omitempty"`
	DateSolar      string       `json:"dateSolar,omitempty"`
	PrayerText     string       `json:"prayerText,omitempty"`
	ImageURL       string       `json:"imageUrl,omitempty"`
	Checklist      []string     `json:"checklist,omitempty"`
	RelatedRituals []string     `json:"relatedRituals,omitempty"`
}

// Tray is a purchasable offering tray. Price is in the smallest currency unit.
type Tray struct {
	ID          apiclient.ID `json:"id,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       int64        `json:"price"`
	Region      string       `json:"region,omitempty"`
	Category    string       `json:"category,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Items       []string     `json:"items,omitempty"`
	RitualID    apiclient.ID `json:"ritualId,omitempty"`
}
