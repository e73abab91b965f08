package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fhvi/provider-directory/internal/domain/entities"
)

func searchFixture() []*entities.Provider {
	return []*entities.Provider{
		{
			ID:          "p1",
			Name:        "Bệnh viện Bạch Mai",
			EngName:     "Bach Mai Hospital",
			Address:     "78 Đường Giải Phóng",
			City:        "Hà Nội",
			EngCity:     "Hanoi",
			District:    "Đống Đa",
			Category:    "HOSPITAL",
			PhoneNumber: []string{"091-234-5678"},
			Services: []entities.Service{
				{ID: 1, Name: "General Checkup", LocalName: "Khám tổng quát"},
			},
		},
		{
			ID:           "p2",
			Name:         "Phòng khám Quốc tế",
			EngName:      "International Clinic",
			City:         "Hồ Chí Minh",
			EngCity:      "Ho Chi Minh City",
			Category:     "CLINIC",
			ProviderType: "PRIVATE",
			PhoneNumber:  []string{"+84 (28) 3822-7848"},
			AppliedBenefitServiceDetails: []entities.Service{
				{ID: 2, Name: "Dental Care", LocalName: "Nha khoa"},
			},
		},
		{
			ID:       "p3",
			Name:     "Trạm y tế phường",
			Category: "HEALTH_STATION",
		},
	}
}

func TestSearch_EmptyQueryIsIdentity(t *testing.T) {
	svc := NewSearchService()
	providers := searchFixture()

	result := svc.Search(providers, "")

	assert.Equal(t, providers, result)
	assert.Len(t, result, 3)
}

func TestSearch_NameCaseInsensitive(t *testing.T) {
	svc := NewSearchService()
	providers := searchFixture()

	result := svc.Search(providers, "bach mai")

	assert.Len(t, result, 1)
	assert.Equal(t, "p1", result[0].ID)
}

func TestSearch_PhoneDigitsIgnoreFormatting(t *testing.T) {
	svc := NewSearchService()
	providers := searchFixture()

	// "0912" is contiguous in "0912345678" once separators are stripped
	result := svc.Search(providers, "0912")
	assert.Len(t, result, 1)
	assert.Equal(t, "p1", result[0].ID)

	// country-code formatted number matches the same way
	result = svc.Search(providers, "2838227848")
	assert.Len(t, result, 1)
	assert.Equal(t, "p2", result[0].ID)

	// digits that are not contiguous in any phone do not match
	result = svc.Search(providers, "1234999")
	assert.Empty(t, result)
}

func TestSearch_ServiceNamesAcrossBothCollections(t *testing.T) {
	svc := NewSearchService()
	providers := searchFixture()

	result := svc.Search(providers, "khám tổng")
	assert.Len(t, result, 1)
	assert.Equal(t, "p1", result[0].ID)

	// applied-benefit services are searched too
	result = svc.Search(providers, "dental")
	assert.Len(t, result, 1)
	assert.Equal(t, "p2", result[0].ID)
}

func TestSearch_PreservesDatasetOrder(t *testing.T) {
	svc := NewSearchService()
	providers := []*entities.Provider{
		{ID: "a", Name: "Clinic One"},
		{ID: "b", Name: "Hospital"},
		{ID: "c", Name: "Clinic Two"},
	}

	result := svc.Search(providers, "clinic")

	assert.Len(t, result, 2)
	assert.Equal(t, "a", result[0].ID)
	assert.Equal(t, "c", result[1].ID)
}

func TestSearch_NoMatch(t *testing.T) {
	svc := NewSearchService()

	result := svc.Search(searchFixture(), "zzzzz")
	assert.Empty(t, result)
}
