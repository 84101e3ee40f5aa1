package entities

import (
	"time"

	"github.com/google/uuid"
)

type TagName string

const (
	TagExpress               TagName = "express"
	TagStandard              TagName = "standard"
	TagFragile               TagName = "fragile"
	TagHeavy                 TagName = "heavy"
	TagInternational         TagName = "international"
	TagDomestic              TagName = "domestic"
	TagTemperatureControlled TagName = "temperature_controlled"
	TagGift                  TagName = "gift"
	TagReturn                TagName = "return"
	TagDocuments             TagName = "documents"
)

var tagInstructions = map[TagName]string{
	TagExpress:               "Expedite handling and deliver on the fastest available route",
	TagStandard:              "Handle with the regular delivery schedule",
	TagFragile:               "Handle with care, keep upright and avoid stacking",
	TagHeavy:                 "Use lifting equipment or two-person handling",
	TagInternational:         "Attach customs documents and verify export paperwork",
	TagDomestic:              "Route through the domestic network only",
	TagTemperatureControlled: "Keep within the required temperature range during transit",
	TagGift:                  "Do not include invoices or price tags in the package",
	TagReturn:                "Route back to the sender warehouse",
	TagDocuments:             "Keep flat and dry, deliver to the addressee only",
}

func (t TagName) String() string {
	return string(t)
}

func (t TagName) IsValid() bool {
	_, ok := tagInstructions[t]
	return ok
}

// Instruction возвращает фиксированную инструкцию для имени тега.
func (t TagName) Instruction() string {
	return tagInstructions[t]
}

func TagNames() []TagName {
	return []TagName{
		TagExpress,
		TagStandard,
		TagFragile,
		TagHeavy,
		TagInternational,
		TagDomestic,
		TagTemperatureControlled,
		TagGift,
		TagReturn,
		TagDocuments,
	}
}

type Tag struct {
	ID          uuid.UUID
	Name        TagName
	Instruction string
	CreatedAt   time.Time
}

func NewTag(name TagName, now time.Time) Tag {
	return Tag{
		ID:          uuid.New(),
		Name:        name,
		Instruction: name.Instruction(),
		CreatedAt:   now,
	}
}
