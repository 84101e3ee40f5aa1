package partner

import (
	"tracker/internal/entities"
)

func ToDomain(p *PartnerDB) *entities.DeliveryPartner {
	if p == nil {
		return nil
	}

	zipCodes := p.ZipCodes
	if zipCodes == nil {
		zipCodes = []string{}
	}
	return &entities.DeliveryPartner{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		ZipCodes:    zipCodes,
		MaxCapacity: p.MaxCapacity,
		CurrentLoad: p.CurrentLoad,
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToDomainList(partnersDB []PartnerDB) []entities.DeliveryPartner {
	if len(partnersDB) == 0 {
		return []entities.DeliveryPartner{}
	}

	result := make([]entities.DeliveryPartner, len(partnersDB))
	for i := range partnersDB {
		result[i] = *ToDomain(&partnersDB[i])
	}
	return result
}

func zipCodesOrEmpty(zipCodes []string) []string {
	if zipCodes == nil {
		return []string{}
	}
	return zipCodes
}
