package dto

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/AlekSi/pointer"
	"github.com/google/uuid"
	"tracker/internal/entities"
)

var (
	ErrInvalidPage      = errors.New("invalid page")
	ErrInvalidPageSize  = errors.New("invalid page_size")
	ErrInvalidOrder     = errors.New("invalid order")
	ErrInvalidPartnerID = errors.New("invalid partner_id")
)

func ShipmentCreateToEntity(d ShipmentCreate) entities.ShipmentCreate {
	tags := make([]entities.TagName, 0, len(d.Tags))
	for _, name := range d.Tags {
		tags = append(tags, entities.TagName(strings.ToLower(strings.TrimSpace(name))))
	}

	return entities.ShipmentCreate{
		Content:            d.Content,
		Weight:             d.Weight,
		Destination:        d.Destination,
		ClientContactEmail: d.ClientContactEmail,
		ClientContactPhone: d.ClientContactPhone,
		Tags:               tags,
	}
}

func ShipmentUpdateToEntity(id uuid.UUID, d ShipmentUpdate) entities.ShipmentUpdate {
	update := entities.ShipmentUpdate{
		ID:                id,
		Location:          d.Location,
		Description:       d.Description,
		EstimatedDelivery: d.EstimatedDelivery,
		VerificationCode:  d.VerificationCode,
	}
	if d.Status != nil {
		update.Status = pointer.To(entities.ShipmentStatus(strings.ToLower(*d.Status)))
	}
	return update
}

func ShipmentFromEntity(s entities.Shipment) Shipment {
	tags := make([]Tag, len(s.Tags))
	for i, tag := range s.Tags {
		tags[i] = TagFromEntity(tag)
	}

	timeline := make([]ShipmentEvent, len(s.Timeline))
	for i, event := range s.Timeline {
		timeline[i] = ShipmentEvent{
			ID:          event.ID,
			Status:      event.Status.String(),
			Location:    event.Location,
			Description: event.Description,
			CreatedAt:   event.CreatedAt,
		}
	}

	return Shipment{
		ID:                 s.ID,
		Content:            s.Content,
		Weight:             s.Weight,
		Destination:        s.Destination,
		ClientContactEmail: s.ClientContactEmail,
		ClientContactPhone: s.ClientContactPhone,
		Status:             s.Status.String(),
		PartnerID:          s.PartnerID,
		EstimatedDelivery:  s.EstimatedDelivery,
		Tags:               tags,
		Timeline:           timeline,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func TagFromEntity(t entities.Tag) Tag {
	return Tag{
		ID:          t.ID,
		Name:        t.Name.String(),
		Instruction: t.Instruction,
		CreatedAt:   t.CreatedAt,
	}
}

func ShipmentListFromEntity(page entities.ShipmentPage) ShipmentList {
	shipments := make([]Shipment, len(page.Shipments))
	for i, s := range page.Shipments {
		shipments[i] = ShipmentFromEntity(s)
	}

	return ShipmentList{
		Shipments:  shipments,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
}

func PartnerCreateToEntity(d PartnerCreate) entities.PartnerModify {
	modify := entities.PartnerModify{
		Name:        d.Name,
		Email:       d.Email,
		MaxCapacity: d.MaxCapacity,
	}
	if d.ZipCodes != nil {
		modify.ZipCodes = pointer.To(d.ZipCodes)
	}
	return modify
}

func PartnerUpdateToEntity(id uuid.UUID, d PartnerUpdate) entities.PartnerModify {
	return entities.PartnerModify{
		ID:          &id,
		Name:        d.Name,
		Email:       d.Email,
		ZipCodes:    d.ZipCodes,
		MaxCapacity: d.MaxCapacity,
	}
}

func PartnerFromEntity(p entities.DeliveryPartner) Partner {
	zipCodes := p.ZipCodes
	if zipCodes == nil {
		zipCodes = []string{}
	}

	return Partner{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		ZipCodes:    zipCodes,
		MaxCapacity: p.MaxCapacity,
		CurrentLoad: p.CurrentLoad,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ReviewFromEntity(r entities.Review) Review {
	return Review{
		ID:         r.ID,
		ShipmentID: r.ShipmentID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}

func ReviewFormFromEntity(s entities.Shipment) ReviewForm {
	form := ReviewForm{
		ShipmentID:  s.ID,
		Content:     s.Content,
		Destination: s.Destination,
		Status:      s.Status.String(),
	}
	for _, event := range s.Timeline {
		if event.Status == entities.StatusDelivered {
			form.DeliveredAt = event.CreatedAt
		}
	}
	return form
}

// PageRequestFromQuery разбирает page, page_size и order. Отсутствующие параметры
// получают значения по умолчанию.
func PageRequestFromQuery(q url.Values) (entities.PageRequest, error) {
	page := entities.PageRequest{
		Page:     1,
		PageSize: entities.DefaultPageSize,
		Order:    entities.SortDesc,
	}

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, ErrInvalidPage
		}
		page.Page = n
	}

	if raw := q.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > entities.MaxPageSize {
			return page, ErrInvalidPageSize
		}
		page.PageSize = n
	}

	if raw := q.Get("order"); raw != "" {
		order := entities.SortOrder(strings.ToLower(raw))
		if order != entities.SortAsc && order != entities.SortDesc {
			return page, ErrInvalidOrder
		}
		page.Order = order
	}

	return page, nil
}

func ShipmentFilterFromQuery(q url.Values) (entities.ShipmentFilter, error) {
	var filter entities.ShipmentFilter

	page, err := PageRequestFromQuery(q)
	if err != nil {
		return filter, err
	}
	filter.Page = page

	if raw := q.Get("tag"); raw != "" {
		filter.Tag = pointer.To(entities.TagName(strings.ToLower(strings.TrimSpace(raw))))
	}

	if raw := q.Get("partner_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, ErrInvalidPartnerID
		}
		filter.PartnerID = &id
	}

	return filter, nil
}
