package scheduler

import (
	"bytes"
	"cmp"

	"tracker/internal/entities"
)

// SelectPartner выбирает партнёра с минимальной нагрузкой среди обслуживающих zip и
// имеющих свободную ёмкость. Равенство разрешается по времени регистрации, затем по id.
func SelectPartner(partners []entities.DeliveryPartner, zip string) (entities.DeliveryPartner, bool) {
	var (
		best  entities.DeliveryPartner
		found bool
	)
	for _, p := range partners {
		if !p.Serves(zip) || !p.HasCapacity() {
			continue
		}
		if !found || comparePartners(p, best) < 0 {
			best = p
			found = true
		}
	}
	return best, found
}

func comparePartners(a, b entities.DeliveryPartner) int {
	return cmp.Or(
		cmp.Compare(a.CurrentLoad, b.CurrentLoad),
		a.CreatedAt.Compare(b.CreatedAt),
		bytes.Compare(a.ID[:], b.ID[:]),
	)
}
