package entities

import "time"

// Provider represents a healthcare provider record in the directory dataset.
// Records are loaded once at startup and never mutated.
type Provider struct {
	ID                           string         `json:"id"`
	LisaCode                     string         `json:"lisaCode,omitempty"`
	Name                         string         `json:"name"`
	EngName                      string         `json:"engName,omitempty"`
	Category                     string         `json:"category"`
	ProviderType                 string         `json:"providerType"`
	Website                      string         `json:"website,omitempty"`
	PhoneNumber                  []string       `json:"phoneNumber,omitempty"`
	Address                      string         `json:"address"`
	EngAddress                   string         `json:"engAddress,omitempty"`
	City                         string         `json:"city"`
	EngCity                      string         `json:"engCity,omitempty"`
	District                     string         `json:"district"`
	EngDistrict                  string         `json:"engDistrict,omitempty"`
	Country                      string         `json:"country"`
	CountryName                  string         `json:"countryName,omitempty"`
	CountryEngName               string         `json:"countryEngName,omitempty"`
	CountryCode                  string         `json:"countryCode,omitempty"`
	Geo                          Geo            `json:"geo"`
	Services                     []Service      `json:"services,omitempty"`
	AppliedBenefitServiceDetails []Service      `json:"appliedBenefitServiceDetails,omitempty"`
	WorkHours                    []WorkHour     `json:"workHours,omitempty"`
	IsSTP                        bool           `json:"isSTP"`
	FHVINetwork                  bool           `json:"fHVINetwork"`
	PreferredClinic              string         `json:"preferredClinic,omitempty"`
	Active                       bool           `json:"active"`
	TemporaryDeposit             bool           `json:"temporaryDeposit"`
	ProviderBanks                []ProviderBank `json:"providerBanks,omitempty"`
	ListRemark                   []Remark       `json:"listRemark,omitempty"`
}

// Service represents a medical service offered by a provider. ID is the
// identity key used for deduplication across the two service collections.
type Service struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	LocalName string  `json:"localName"`
	Remark    *string `json:"remark,omitempty"`
}

// Geo represents geographical coordinates. A zero latitude or longitude
// means the provider has no usable location.
type Geo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HasLocation reports whether the coordinates describe a real point.
// (0,0) is the dataset's "unset" marker, never the actual equator point.
func (g Geo) HasLocation() bool {
	return g.Latitude != 0 && g.Longitude != 0
}

// WorkHour pairs a set of weekdays (0=Monday .. 6=Sunday) with one or more
// operating-hour intervals.
type WorkHour struct {
	ID             string          `json:"id,omitempty"`
	Days           []int           `json:"days"`
	IsSpecificTime bool            `json:"isSpecificTime,omitempty"`
	OperationHours []OperationHour `json:"operationHours"`
}

// OperationHour is a single opening interval. Only the time-of-day component
// of the stored timestamps is meaningful; the date part is ignored.
type OperationHour struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// ProviderBank holds payment account details for a provider.
type ProviderBank struct {
	ID            *string `json:"id"`
	AccountName   string  `json:"accountName"`
	AccountNumber string  `json:"accountNumber"`
	Remark        *string `json:"remark"`
	Default       bool    `json:"default"`
	BankID        string  `json:"bankId"`
	BankName      string  `json:"bankName"`
}

// Remark is a localized free-text note attached to a provider.
type Remark struct {
	Type       string `json:"type"`
	Content    string `json:"remarkContent"`
	EngContent string `json:"remarkEngContent"`
}

// AllServices returns the union of the primary services list and the
// applied-benefit services list, deduplicated by service id. A later entry
// with the same id replaces the earlier value but keeps its position.
func (p *Provider) AllServices() []Service {
	if len(p.Services) == 0 && len(p.AppliedBenefitServiceDetails) == 0 {
		return nil
	}

	index := make(map[int]int, len(p.Services)+len(p.AppliedBenefitServiceDetails))
	merged := make([]Service, 0, len(p.Services)+len(p.AppliedBenefitServiceDetails))

	for _, list := range [][]Service{p.Services, p.AppliedBenefitServiceDetails} {
		for _, s := range list {
			if pos, seen := index[s.ID]; seen {
				merged[pos] = s
				continue
			}
			index[s.ID] = len(merged)
			merged = append(merged, s)
		}
	}

	return merged
}

// HasService reports whether serviceID appears in either service collection.
func (p *Provider) HasService(serviceID int) bool {
	for _, s := range p.Services {
		if s.ID == serviceID {
			return true
		}
	}
	for _, s := range p.AppliedBenefitServiceDetails {
		if s.ID == serviceID {
			return true
		}
	}
	return false
}

// Dataset is the on-disk shape of the provider dataset: a total count plus
// the full record array.
type Dataset struct {
	Total int         `json:"total"`
	Data  []*Provider `json:"data"`
}
