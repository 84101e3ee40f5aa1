package capacity_changed

import "time"

type capacityChangedEvent struct {
	Kind       string    `json:"kind"`
	PartnerID  string    `json:"partner_id"`
	ZipCodes   []string  `json:"zip_codes"`
	OccurredAt time.Time `json:"occurred_at"`
}
