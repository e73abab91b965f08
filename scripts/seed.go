package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fhvi/provider-directory/internal/adapters/dataset"
	"github.com/fhvi/provider-directory/internal/domain/entities"
)

// Generates a small sample provider dataset for local development:
//
//	go run scripts/seed.go -out data/providers.json
func main() {
	out := flag.String("out", "data/providers.json", "output path for the dataset file")
	flag.Parse()

	ds := sampleDataset()
	if err := dataset.Validate(ds); err != nil {
		log.Fatalf("generated dataset is invalid: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	payload, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode dataset: %v", err)
	}
	if err := os.WriteFile(*out, payload, 0o644); err != nil {
		log.Fatalf("failed to write dataset: %v", err)
	}

	log.Printf("wrote %d providers to %s", len(ds.Data), *out)
}

func sampleDataset() *entities.Dataset {
	providers := []*entities.Provider{
		{
			ID:             "VN-HAN-001",
			LisaCode:       "LS-0417",
			Name:           "Bệnh viện Bạch Mai",
			EngName:        "Bach Mai Hospital",
			Category:       "HOSPITAL",
			ProviderType:   "PUBLIC",
			Website:        "https://bachmai.gov.vn",
			PhoneNumber:    []string{"024-3869-3731"},
			Address:        "78 Đường Giải Phóng, Phương Mai",
			EngAddress:     "78 Giai Phong Road, Phuong Mai",
			City:           "Hà Nội",
			EngCity:        "Hanoi",
			District:       "Đống Đa",
			EngDistrict:    "Dong Da",
			Country:        "vietnam",
			CountryName:    "Việt Nam",
			CountryEngName: "Vietnam",
			CountryCode:    "VN",
			Geo:            entities.Geo{Latitude: 21.0009, Longitude: 105.8399},
			Services: []entities.Service{
				{ID: 1, Name: "General Checkup", LocalName: "Khám tổng quát"},
				{ID: 2, Name: "Cardiology", LocalName: "Tim mạch"},
			},
			WorkHours: []entities.WorkHour{
				workHours([]int{0, 1, 2, 3, 4}, 8, 0, 17, 0),
				workHours([]int{5}, 8, 0, 12, 0),
			},
			IsSTP:       true,
			FHVINetwork: true,
			Active:      true,
		},
		{
			ID:             "VN-HAN-002",
			Name:           "Phòng khám Đa khoa Quốc tế Vinmec",
			EngName:        "Vinmec International Clinic",
			Category:       "CLINIC",
			ProviderType:   "PRIVATE",
			PhoneNumber:    []string{"024-3974-3556", "1900-232-389"},
			Address:        "458 Phố Minh Khai",
			City:           "Hà Nội",
			EngCity:        "Hanoi",
			District:       "Hai Bà Trưng",
			EngDistrict:    "Hai Ba Trung",
			Country:        "vietnam",
			CountryEngName: "Vietnam",
			CountryCode:    "VN",
			Geo:            entities.Geo{Latitude: 20.9967, Longitude: 105.8686},
			AppliedBenefitServiceDetails: []entities.Service{
				{ID: 1, Name: "General Checkup", LocalName: "Khám tổng quát"},
				{ID: 3, Name: "Dental Care", LocalName: "Nha khoa"},
			},
			WorkHours: []entities.WorkHour{
				workHours([]int{0, 1, 2, 3, 4, 5, 6}, 7, 30, 19, 0),
			},
			IsSTP:       true,
			FHVINetwork: true,
			Active:      true,
		},
		{
			ID:             "VN-HCM-001",
			Name:           "Bệnh viện Chợ Rẫy",
			EngName:        "Cho Ray Hospital",
			Category:       "HOSPITAL",
			ProviderType:   "PUBLIC",
			PhoneNumber:    []string{"028-3855-4137"},
			Address:        "201B Nguyễn Chí Thanh",
			City:           "Hồ Chí Minh",
			EngCity:        "Ho Chi Minh City",
			District:       "Quận 5",
			EngDistrict:    "District 5",
			Country:        "vietnam",
			CountryEngName: "Vietnam",
			CountryCode:    "VN",
			Geo:            entities.Geo{Latitude: 10.7554, Longitude: 106.6607},
			Services: []entities.Service{
				{ID: 1, Name: "General Checkup", LocalName: "Khám tổng quát"},
				{ID: 4, Name: "Emergency", LocalName: "Cấp cứu"},
			},
			WorkHours: []entities.WorkHour{
				workHours([]int{0, 1, 2, 3, 4, 5, 6}, 0, 0, 23, 59),
			},
			IsSTP:       false,
			FHVINetwork: true,
			Active:      true,
		},
		{
			// No usable coordinates: excluded from distance filtering
			ID:             "TH-BKK-001",
			Name:           "Bumrungrad International Hospital",
			EngName:        "Bumrungrad International Hospital",
			Category:       "HOSPITAL",
			ProviderType:   "PRIVATE",
			PhoneNumber:    []string{"+66-2066-8888"},
			Address:        "33 Sukhumvit 3",
			City:           "Bangkok",
			EngCity:        "Bangkok",
			Country:        "thailand",
			CountryEngName: "Thailand",
			CountryCode:    "TH",
			Services: []entities.Service{
				{ID: 1, Name: "General Checkup"},
			},
			FHVINetwork: false,
			Active:      true,
		},
	}

	return &entities.Dataset{
		Total: len(providers),
		Data:  providers,
	}
}

func workHours(days []int, startHour, startMin, endHour, endMin int) entities.WorkHour {
	return entities.WorkHour{
		Days: days,
		OperationHours: []entities.OperationHour{
			{
				StartTime: time.Date(2021, 1, 1, startHour, startMin, 0, 0, time.UTC),
				EndTime:   time.Date(2021, 1, 1, endHour, endMin, 0, 0, time.UTC),
			},
		},
	}
}
